package equipment

type Brand struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type BrandsResponse struct {
	Brands []string `json:"brands"`
}

// OptionsResponse lists the loft and shaft choices offered once a club brand
// has been entered in the booking form.
type OptionsResponse struct {
	Lofts  []string `json:"lofts"`
	Shafts []string `json:"shafts"`
}

// Loft and shaft pickers show a fixed catalog; they are not brand-specific
// in the current lineup.
var (
	LoftOptions  = []string{"9.5", "10.5", "11.5", "12.5"}
	ShaftOptions = []string{"R", "SR", "S", "R2"}
)
