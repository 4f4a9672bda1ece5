package validator

// Validator accumulates named validation failures for one request.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, ok := v.Errors[key]; !ok {
		v.Errors[key] = message
	}
}

// Check records message under key when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}
