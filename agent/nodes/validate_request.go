package commercenode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	storefrontx "github.com/tanpawarit/research-commerce-assistant/agent/storefront"
)

// MaxLimit is the largest page the storefront admin API serves.
const MaxLimit = 250

type GraphState struct {
	Mode     contractx.Mode
	StoreURL string
	Limit    int

	Store    string
	Products []contractx.Product
	Orders   []contractx.Order
}

func ValidateRequest(in contractx.StoreRequest) (*GraphState, error) {
	if in.Limit < 1 || in.Limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d, got %d", contractx.ErrValidation, MaxLimit, in.Limit)
	}

	st := &GraphState{
		Mode:  in.Mode,
		Limit: in.Limit,
	}

	switch in.Mode {
	case contractx.ModePublic:
		st.StoreURL = strings.TrimSpace(in.StoreURL)
		if storefrontx.NormalizeStoreURL(st.StoreURL) == "" {
			return nil, fmt.Errorf("%w: public mode requires a store url", contractx.ErrValidation)
		}
	case contractx.ModePrivate:
	default:
		return nil, fmt.Errorf("%w: unsupported mode=%q", contractx.ErrValidation, in.Mode)
	}

	return st, nil
}
