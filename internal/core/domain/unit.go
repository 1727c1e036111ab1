package domain

// Unit is an organizational unit (a troop) that owns journals.
type Unit struct {
	UnitID         int64  `json:"unitID"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	BankAccount    string `json:"bankAccount"`
	AutoBankImport bool   `json:"autoBankImport"`
}
