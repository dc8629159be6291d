package commercenode

import (
	"fmt"

	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	reportx "github.com/tanpawarit/research-commerce-assistant/agent/report"
)

func BuildReport(in *GraphState) (contractx.Report, error) {
	if in == nil {
		return contractx.Report{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	return reportx.Build(in.Products, in.Orders, in.Mode, in.Store), nil
}
