package drug

// DefaultDoseUnit is applied when a create request omits the dose unit.
const DefaultDoseUnit = "mg"

type Drug struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`

	// Name, Type, Dose and DoseUnit form the drug composition. The
	// composite unique index is the actual duplicate guard; the service
	// pre-check only exists for a friendly error message.
	Name     string  `gorm:"column:name;type:varchar(50);not null;uniqueIndex:idx_drugs_composition" json:"name"`
	Type     string  `gorm:"column:type;type:varchar(50);not null;uniqueIndex:idx_drugs_composition" json:"type"`
	Dose     float64 `gorm:"column:dose;not null;uniqueIndex:idx_drugs_composition" json:"dose"`
	DoseUnit string  `gorm:"column:dose_unit;type:varchar(4);not null;default:'mg';uniqueIndex:idx_drugs_composition" json:"dose_unit"`

	Direction   string `gorm:"column:direction;type:varchar(50);not null" json:"direction"`
	Instruction string `gorm:"column:instruction;type:text;not null" json:"instruction"`

	IsDeleted bool `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Drug) TableName() string {
	return "medications.drugs"
}

// SameComposition reports whether the drug matches the given unique tuple.
func (d *Drug) SameComposition(name, typ string, dose float64, doseUnit string) bool {
	return d.Name == name && d.Type == typ && d.Dose == dose && d.DoseUnit == doseUnit
}

type CreateDrugCommand struct {
	Name        string
	Type        string
	Dose        float64
	DoseUnit    string
	Direction   string
	Instruction string
}

type UpdateDrugCommand struct {
	Name        string
	Type        string
	Dose        float64
	DoseUnit    string
	Direction   string
	Instruction string
}
