package briefing

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/leadbrief/internal/model"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func applied(company, lastAction string) model.OpportunityRow {
	return model.OpportunityRow{Company: company, Status: model.StatusApplied, LastAction: lastAction}
}

func TestGenerate_FollowUpThreshold(t *testing.T) {
	tests := []struct {
		name       string
		row        model.OpportunityRow
		wantFollow bool
	}{
		{"exactly five days", applied("Five", "2026-03-05"), true},
		{"four days", applied("Four", "2026-03-06"), false},
		{"long ago", applied("Old", "2025-12-01"), true},
		{"same day", applied("Today", "2026-03-10"), false},
		{"future date", applied("Future", "2026-04-01"), false},
		{"empty last action", applied("Empty", ""), false},
		{"unparseable last action", applied("Garbage", "last tuesday"), false},
		{"date with time suffix", applied("Stamp", "2026-03-01 14:00"), true},
		{"status not applied", model.OpportunityRow{Company: "Interview", Status: "Interviewing", LastAction: "2026-01-01"}, false},
		{"status case differs", model.OpportunityRow{Company: "Lower", Status: "applied", LastAction: "2026-01-01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Generate([]model.OpportunityRow{tt.row}, nil, testNow, time.UTC)
			if got := len(b.FollowUps) == 1; got != tt.wantFollow {
				t.Errorf("follow-up = %v, want %v (FollowUps=%v)", got, tt.wantFollow, b.FollowUps)
			}
		})
	}
}

func TestGenerate_UsesConfiguredTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 02:00 UTC on the 10th is still the 9th in Los Angeles.
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	rows := []model.OpportunityRow{applied("Edge", "2026-03-05")}

	if b := Generate(rows, nil, now, loc); len(b.FollowUps) != 0 {
		t.Errorf("FollowUps = %v, want none at four local days", b.FollowUps)
	}
	if b := Generate(rows, nil, now, time.UTC); len(b.FollowUps) != 1 {
		t.Errorf("FollowUps = %v, want one at five UTC days", b.FollowUps)
	}
	if b := Generate(rows, nil, now, loc); b.Date != "2026-03-09" {
		t.Errorf("Date = %q, want local date", b.Date)
	}
}

func TestGenerate_StatusHistogramOrder(t *testing.T) {
	rows := []model.OpportunityRow{
		{Company: "A", Status: "Applied"},
		{Company: "B", Status: "New Lead"},
		{Company: "C", Status: ""},
		{Company: "D", Status: "New Lead"},
		{Company: "E", Status: "Applied"},
		{Company: "F", Status: "Offer"},
	}
	b := Generate(rows, nil, testNow, time.UTC)

	want := []StatusCount{{"Applied", 2}, {"New Lead", 2}, {"", 1}, {"Offer", 1}}
	if len(b.Statuses) != len(want) {
		t.Fatalf("Statuses = %v, want %v", b.Statuses, want)
	}
	for i := range want {
		if b.Statuses[i] != want[i] {
			t.Errorf("Statuses[%d] = %v, want %v", i, b.Statuses[i], want[i])
		}
	}
	if b.Statuses[2].Label() != "(no status)" {
		t.Errorf("blank label = %q", b.Statuses[2].Label())
	}
	if b.Total != 6 {
		t.Errorf("Total = %d, want 6", b.Total)
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"2026-02-28", 10, true},
		{"2026-02-28 17:45:00", 10, true},
		{"2026-02-28T17:45:00Z", 10, true},
		{"2026-3-4", 6, true},
		{"3/4/2026", 6, true},
		{"03/04/2026", 6, true},
		{"2026/3/4", 6, true},
		{"3/4/2026 9:15", 6, true},
		{"Mar 4, 2026", 6, true},
		{"4 Mar 2026", 6, true},
		{" 2026-03-04 ", 6, true},
		{"", 0, false},
		{"next week", 0, false},
		{"2026-13-01", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := DaysSince(tt.date, testNow, time.UTC)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DaysSince(%q) = %d, %v; want %d, %v", tt.date, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGenerate_ReformattedDatesAreFlagged(t *testing.T) {
	rows := []model.OpportunityRow{
		applied("Slashed", "3/1/2026"),
		applied("Unpadded", "2026-3-2"),
		applied("Garbled", "sometime in March"),
	}
	b := Generate(rows, nil, testNow, time.UTC)

	if len(b.FollowUps) != 2 || b.FollowUps[0].String() != "Slashed (applied 9 days ago)" ||
		b.FollowUps[1].String() != "Unpadded (applied 8 days ago)" {
		t.Errorf("FollowUps = %v", b.FollowUps)
	}
	if len(b.Undated) != 1 || b.Undated[0] != "Garbled" {
		t.Errorf("Undated = %v, want [Garbled]", b.Undated)
	}
}

func TestActionsAndSubject(t *testing.T) {
	rows := []model.OpportunityRow{applied("CompanyA", "2026-03-01")}
	added := []model.OpportunityRow{{Company: "CompanyC", Industry: "FinTech", Priority: model.PriorityHigh}}
	b := Generate(rows, added, testNow, time.UTC)

	want := []string{
		"Follow up with CompanyA",
		"Research CompanyC",
		"Send 2-3 outreach messages",
		"Apply to 2 new positions",
	}
	got := b.Actions()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Actions = %q, want %q", got, want)
	}
	if s := b.Subject(); s != "Daily Job Search Briefing: 1 new leads, 1 follow-ups" {
		t.Errorf("Subject = %q", s)
	}
}

func TestHTML_Sections(t *testing.T) {
	rows := []model.OpportunityRow{
		applied("CompanyA", "2026-03-04"),
		{Company: "CompanyB", Status: model.StatusNewLead},
		{Company: "CompanyC", Status: model.StatusNewLead},
	}
	added := []model.OpportunityRow{{Company: "CompanyC", Industry: "FinTech", Priority: model.PriorityHigh}}
	b := Generate(rows, added, testNow, time.UTC)

	html, err := b.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	var statuses []string
	doc.Find("ul.statuses li").Each(func(_ int, s *goquery.Selection) {
		statuses = append(statuses, s.Text())
	})
	if strings.Join(statuses, "|") != "Applied: 1|New Lead: 2" {
		t.Errorf("statuses = %q", statuses)
	}
	if got := doc.Find("ul.followups li").Text(); got != "CompanyA (applied 6 days ago)" {
		t.Errorf("follow-up = %q", got)
	}
	if got := doc.Find("ul.new-companies li").Text(); got != "CompanyC (FinTech) - High priority" {
		t.Errorf("new company = %q", got)
	}
	if n := doc.Find("ul.actions li").Length(); n != 4 {
		t.Errorf("actions = %d, want 4", n)
	}
}

func TestHTML_OmitsEmptySectionsAndEscapes(t *testing.T) {
	rows := []model.OpportunityRow{{Company: "<script>x</script>", Status: "New Lead"}}
	b := Generate(rows, nil, testNow, time.UTC)

	html, err := b.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "followups") || strings.Contains(html, "new-companies") {
		t.Errorf("empty sections rendered:\n%s", html)
	}

	b.NewCompanies = rows
	html, err = b.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("company name not escaped:\n%s", html)
	}
}

func TestText(t *testing.T) {
	rows := []model.OpportunityRow{applied("CompanyA", "2026-03-04")}
	b := Generate(rows, nil, testNow, time.UTC)

	text, err := b.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	for _, want := range []string{
		"Daily Job Search Briefing\n",
		"\nPipeline Status\n- Applied: 1\n",
		"\nNeeds Follow-up\n- CompanyA (applied 6 days ago)\n",
		"- Apply to 2 new positions\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "<") {
		t.Errorf("Text contains markup:\n%s", text)
	}
}

func TestMessage(t *testing.T) {
	b := Generate(nil, nil, testNow, time.UTC)
	msg, err := b.Message("me@example.com")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if msg.To != "me@example.com" || msg.Subject != b.Subject() {
		t.Errorf("msg = %+v", msg)
	}
	if msg.HTML == "" || msg.Text == "" {
		t.Error("msg bodies are empty")
	}
	if strings.Contains(msg.HTML, "statuses") {
		t.Error("empty sheet rendered a status section")
	}
}
