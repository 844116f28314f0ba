package drug

import "errors"

var (
	ErrDrugNotFound      = errors.New("drug not found")
	ErrDrugAlreadyExists = errors.New("drug with this name, type, dose and dose unit already exists")
	ErrNoDrugsFound      = errors.New("no drugs found")
)
