package model

// Priority is the coarse urgency of a lead, derived from its industry.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority returns the Priority named by s. Only the three known levels are accepted.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), true
	}
	return "", false
}

// Status values this system writes or inspects. The store accepts any other text.
const (
	StatusNewLead = "New Lead"
	StatusApplied = "Applied"
)

// Columns is the fixed header row of the opportunity sheet, in column order.
var Columns = []string{
	"Priority",
	"Company Name",
	"Industry",
	"Type",
	"Location",
	"Job Link",
	"Website",
	"Contact Person/Role",
	"Status",
	"Date Added",
	"Last Action",
	"Notes",
}

// DateLayout is the format of DateAdded and LastAction cells.
const DateLayout = "2006-01-02"

// OpportunityRow is one tracked company in the sheet.
type OpportunityRow struct {
	Priority   Priority
	Company    string
	Industry   string
	Type       string
	Location   string
	JobLink    string
	Website    string
	Contact    string
	Status     string
	DateAdded  string // YYYY-MM-DD in the configured timezone
	LastAction string // YYYY-MM-DD or empty; edited by the user
	Notes      string
}

// ToRecord returns the row as a 12-cell record in Columns order.
func (r OpportunityRow) ToRecord() []string {
	return []string{
		string(r.Priority),
		r.Company,
		r.Industry,
		r.Type,
		r.Location,
		r.JobLink,
		r.Website,
		r.Contact,
		r.Status,
		r.DateAdded,
		r.LastAction,
		r.Notes,
	}
}

// RowFromRecord builds a row from a record in Columns order. Missing trailing
// cells are treated as empty and extra cells are ignored.
func RowFromRecord(rec []string) OpportunityRow {
	cell := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return OpportunityRow{
		Priority:   Priority(cell(0)),
		Company:    cell(1),
		Industry:   cell(2),
		Type:       cell(3),
		Location:   cell(4),
		JobLink:    cell(5),
		Website:    cell(6),
		Contact:    cell(7),
		Status:     cell(8),
		DateAdded:  cell(9),
		LastAction: cell(10),
		Notes:      cell(11),
	}
}

// Candidate is a job posting returned by a SearchProvider. It is never stored
// directly; the pipeline turns admitted candidates into OpportunityRows.
type Candidate struct {
	Company  string `yaml:"company"`
	Industry string `yaml:"industry"`
	Type     string `yaml:"type"`
	Location string `yaml:"location"`
	JobLink  string `yaml:"job_link"`
	Website  string `yaml:"website"`
	Contact  string `yaml:"contact"`
	Notes    string `yaml:"notes"`
}

// NewLeadRow turns a candidate into a fresh "New Lead" row.
func NewLeadRow(c Candidate, p Priority, dateAdded string) OpportunityRow {
	return OpportunityRow{
		Priority:  p,
		Company:   c.Company,
		Industry:  c.Industry,
		Type:      c.Type,
		Location:  c.Location,
		JobLink:   c.JobLink,
		Website:   c.Website,
		Contact:   c.Contact,
		Status:    StatusNewLead,
		DateAdded: dateAdded,
		Notes:     c.Notes,
	}
}
