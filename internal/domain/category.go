package domain

// CategoryID is the domain key for a goal category. The set is fixed; the
// Spanish ids are part of the stored data contract and must not be renamed.
type CategoryID string

const (
	CategorySalud   CategoryID = "salud"
	CategoryIdioma  CategoryID = "idioma"
	CategoryAhorro  CategoryID = "ahorro"
	CategoryEnfoque CategoryID = "enfoque"
	CategoryOtro    CategoryID = "otro"
)

// Category is a static catalog entry describing one selectable goal category.
type Category struct {
	ID          CategoryID
	DisplayName string
	Icon        string
	ColorTag    string
}

// categories is the canonical catalog. Keep ids stable because goals store them.
var categories = []Category{
	{ID: CategorySalud, DisplayName: "Salud/Peso", Icon: "💪", ColorTag: "mint"},
	{ID: CategoryIdioma, DisplayName: "Idioma", Icon: "🗣️", ColorTag: "blue"},
	{ID: CategoryAhorro, DisplayName: "Ahorro", Icon: "💰", ColorTag: "yellow"},
	{ID: CategoryEnfoque, DisplayName: "Enfoque/Estudio", Icon: "🎯", ColorTag: "pink"},
	{ID: CategoryOtro, DisplayName: "Otro", Icon: "✨", ColorTag: "primary"},
}

// Categories returns the catalog in display order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a catalog entry. The second return is false for
// unknown ids.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategory reports whether id names a catalog entry.
func ValidCategory(id CategoryID) bool {
	_, ok := CategoryByID(id)
	return ok
}
