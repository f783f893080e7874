package models

// StatusCategory buckets a status for templates and reporting. Three
// categories exist as data; the interactive status editor displays only two
// (completed is folded into active there, see DisplayBuckets).
type StatusCategory string

const (
	CategoryNotStarted StatusCategory = "notStarted"
	CategoryActive     StatusCategory = "active"
	CategoryCompleted  StatusCategory = "completed"
)

// ValidCategories enumerates the accepted status categories.
var ValidCategories = map[StatusCategory]struct{}{
	CategoryNotStarted: {},
	CategoryActive:     {},
	CategoryCompleted:  {},
}

// StatusSeed is one entry of a status template or of a replace-statuses
// request, before persistence assigns id and order.
type StatusSeed struct {
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Icon     string         `json:"icon,omitempty"`
	Category StatusCategory `json:"category"`
}

// StatusTemplate groups seeds by category. The completed bucket is kept
// distinct here even though the editor UI renders it inside "Active".
type StatusTemplate struct {
	NotStarted []StatusSeed
	Active     []StatusSeed
	Completed  []StatusSeed
}

// StatusTemplates are the built-in status sets offered when configuring a
// space or a list.
var StatusTemplates = map[string]StatusTemplate{
	"Custom": {
		NotStarted: []StatusSeed{{Name: "TODO", Color: "#94a3b8", Icon: "Circle", Category: CategoryNotStarted}},
		Active: []StatusSeed{
			{Name: "IN_PROGRESS", Color: "#3b82f6", Icon: "Circle", Category: CategoryActive},
			{Name: "REVIEW", Color: "#8b5cf6", Icon: "Circle", Category: CategoryActive},
		},
		Completed: []StatusSeed{{Name: "DONE", Color: "#10b981", Icon: "CheckCircle", Category: CategoryCompleted}},
	},
	"Kanban": {
		NotStarted: []StatusSeed{{Name: "Backlog", Color: "#94a3b8", Icon: "Inbox", Category: CategoryNotStarted}},
		Active: []StatusSeed{
			{Name: "To Do", Color: "#ef4444", Icon: "Circle", Category: CategoryActive},
			{Name: "In Progress", Color: "#f59e0b", Icon: "Circle", Category: CategoryActive},
			{Name: "Review", Color: "#8b5cf6", Icon: "Eye", Category: CategoryActive},
		},
		Completed: []StatusSeed{{Name: "Done", Color: "#10b981", Icon: "CheckCircle", Category: CategoryCompleted}},
	},
	"Scrum": {
		NotStarted: []StatusSeed{{Name: "Product Backlog", Color: "#94a3b8", Icon: "Inbox", Category: CategoryNotStarted}},
		Active: []StatusSeed{
			{Name: "Sprint Backlog", Color: "#f59e0b", Icon: "List", Category: CategoryActive},
			{Name: "In Progress", Color: "#3b82f6", Icon: "Zap", Category: CategoryActive},
			{Name: "Testing", Color: "#8b5cf6", Icon: "Bug", Category: CategoryActive},
			{Name: "Review", Color: "#06b6d4", Icon: "Eye", Category: CategoryActive},
		},
		Completed: []StatusSeed{{Name: "Done", Color: "#10b981", Icon: "CheckCircle", Category: CategoryCompleted}},
	},
	"Marketing": {
		NotStarted: []StatusSeed{{Name: "Planning", Color: "#94a3b8", Icon: "Calendar", Category: CategoryNotStarted}},
		Active: []StatusSeed{
			{Name: "Creation", Color: "#f59e0b", Icon: "Palette", Category: CategoryActive},
			{Name: "Review", Color: "#8b5cf6", Icon: "Eye", Category: CategoryActive},
			{Name: "Scheduled", Color: "#06b6d4", Icon: "Clock", Category: CategoryActive},
		},
		Completed: []StatusSeed{{Name: "Published", Color: "#10b981", Icon: "Send", Category: CategoryCompleted}},
	},
	"Content": {
		NotStarted: []StatusSeed{{Name: "Idea", Color: "#94a3b8", Icon: "Lightbulb", Category: CategoryNotStarted}},
		Active: []StatusSeed{
			{Name: "Draft", Color: "#f59e0b", Icon: "FileEdit", Category: CategoryActive},
			{Name: "In Review", Color: "#8b5cf6", Icon: "Eye", Category: CategoryActive},
			{Name: "Approved", Color: "#10b981", Icon: "CheckCircle", Category: CategoryActive},
		},
		Completed: []StatusSeed{{Name: "Published", Color: "#06b6d4", Icon: "Send", Category: CategoryCompleted}},
	},
	"Normal": {
		NotStarted: []StatusSeed{{Name: "To Do", Color: "#94a3b8", Icon: "Circle", Category: CategoryNotStarted}},
		Active:     []StatusSeed{{Name: "Doing", Color: "#3b82f6", Icon: "Circle", Category: CategoryActive}},
		Completed:  []StatusSeed{{Name: "Done", Color: "#10b981", Icon: "CheckCircle", Category: CategoryCompleted}},
	},
}

// ExpandTemplate flattens a named template into the ordered seed list a
// replace-statuses call expects: notStarted first, then active, then
// completed. Each seed keeps its real category. Returns false for an unknown
// template name.
func ExpandTemplate(name string) ([]StatusSeed, bool) {
	tpl, ok := StatusTemplates[name]
	if !ok {
		return nil, false
	}
	seeds := make([]StatusSeed, 0, len(tpl.NotStarted)+len(tpl.Active)+len(tpl.Completed))
	seeds = append(seeds, tpl.NotStarted...)
	seeds = append(seeds, tpl.Active...)
	seeds = append(seeds, tpl.Completed...)
	return seeds, true
}

// StatusBuckets is the two-column shape the interactive status editor
// renders. "Done"-ness by name matching happens elsewhere; here completed
// statuses simply land in the Active column.
type StatusBuckets struct {
	NotStarted []Status `json:"not_started"`
	Active     []Status `json:"active"`
}

// DisplayBuckets partitions statuses for the editor. This two-bucket view is
// a presentation simplification; the stored category stays three-valued.
func DisplayBuckets(statuses []Status) StatusBuckets {
	b := StatusBuckets{NotStarted: []Status{}, Active: []Status{}}
	for _, st := range statuses {
		if st.Category == CategoryNotStarted {
			b.NotStarted = append(b.NotStarted, st)
		} else {
			b.Active = append(b.Active, st)
		}
	}
	return b
}
