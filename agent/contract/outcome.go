package contract

// Failure is the in-band form of an error carried by an Outcome.
type Failure struct {
	Message string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
}

// Outcome holds either a value or the error that prevented it.
type Outcome[T any] struct {
	Value T
	Err   error
}

func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

func (o Outcome[T]) Get() (T, error) {
	return o.Value, o.Err
}

func (o Outcome[T]) Failure() *Failure {
	if o.Err == nil {
		return nil
	}
	return &Failure{Message: o.Err.Error(), Kind: KindOf(o.Err)}
}

// MarshalJSON encodes the value on success and {"error", "kind"} otherwise.
// Messages keep <, > and & as written.
func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	if f := o.Failure(); f != nil {
		return marshalNoEscape(f)
	}
	return marshalNoEscape(o.Value)
}
