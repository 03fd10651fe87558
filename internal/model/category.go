package model

// Category tags a source file with the role it plays in the application.
// Rules restrict themselves to the categories they care about.
type Category string

const (
	// CategoryModel covers ActiveRecord models (app/models), concerns excluded.
	CategoryModel Category = "model"
	// CategoryRoute covers the routing table (config/routes.rb).
	CategoryRoute Category = "route"
	// CategoryController covers app/controllers.
	CategoryController Category = "controller"
	// CategoryMigration covers db/migrate.
	CategoryMigration Category = "migration"
	// CategoryHelper covers app/helpers.
	CategoryHelper Category = "helper"
	// CategoryView covers app/views templates.
	CategoryView Category = "view"
	// CategoryMailer covers app/mailers.
	CategoryMailer Category = "mailer"
	// CategorySchema covers db/schema.rb.
	CategorySchema Category = "schema"
)

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryModel,
		CategoryRoute,
		CategoryController,
		CategoryMigration,
		CategoryHelper,
		CategoryView,
		CategoryMailer,
		CategorySchema,
	}
}

// Phase is one of the two ordered traversal passes.
type Phase int

const (
	// PhasePrepare lets rules collect cross-file context.
	PhasePrepare Phase = iota
	// PhaseReview runs the actual checks.
	PhaseReview
)

// Phases returns the phases in execution order.
func Phases() []Phase {
	return []Phase{PhasePrepare, PhaseReview}
}

func (p Phase) String() string {
	switch p {
	case PhasePrepare:
		return "prepare"
	case PhaseReview:
		return "review"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name; unknown names map to review.
func (p *Phase) UnmarshalText(text []byte) error {
	if string(text) == PhasePrepare.String() {
		*p = PhasePrepare
		return nil
	}

	*p = PhaseReview

	return nil
}
