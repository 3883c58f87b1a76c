package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPapers(t *testing.T) {
	path := writeFile(t, "paper.csv",
		"id,title,venue,year,abstract\n"+
			"p1,Graphs at Scale,KDD,2012,We study graphs.\n"+
			"p2,\"Maps, Everywhere\",WWW,2013,Nothing here.\n")

	papers, err := ReadPapers(path)
	if err != nil {
		t.Fatalf("ReadPapers: %v", err)
	}
	want := []Paper{
		{ID: "p1", Title: "Graphs at Scale", Venue: "KDD", Year: 2012, Abstract: "We study graphs."},
		{ID: "p2", Title: "Maps, Everywhere", Venue: "WWW", Year: 2013, Abstract: "Nothing here."},
	}
	if !reflect.DeepEqual(papers, want) {
		t.Errorf("papers = %+v, want %+v", papers, want)
	}
}

func TestReadPapersBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		header  bool
	}{
		{"wrong header", "id,name,venue,year,abstract\np1,t,v,2012,a\n", true},
		{"missing column", "id,title,venue,year\np1,t,v,2012\n", true},
		{"bad year", "id,title,venue,year,abstract\np1,t,v,twelve,a\n", false},
		{"short row", "id,title,venue,year,abstract\np1,t,v\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "paper.csv", tt.content)
			_, err := ReadPapers(path)
			if err == nil {
				t.Fatal("ReadPapers accepted malformed input")
			}
			if tt.header && !errors.Is(err, ErrHeader) {
				t.Errorf("error = %v, want ErrHeader", err)
			}
		})
	}
}

func TestPaperRoundTrip(t *testing.T) {
	papers := []Paper{
		{ID: "p1", Title: "A, B, and C", Venue: "KDD", Year: 2011, Abstract: "multi\nline"},
		{ID: "p2", Title: "Plain", Venue: "WWW", Year: 2014, Abstract: ""},
	}
	path := filepath.Join(t.TempDir(), "paper.csv")
	if err := WritePapers(path, papers); err != nil {
		t.Fatalf("WritePapers: %v", err)
	}
	got, err := ReadPapers(path)
	if err != nil {
		t.Fatalf("ReadPapers: %v", err)
	}
	if !reflect.DeepEqual(got, papers) {
		t.Errorf("round trip = %+v, want %+v", got, papers)
	}
}

func TestReadPersons(t *testing.T) {
	path := writeFile(t, "person.csv",
		"id,name\n"+
			"a1,Ada\n"+
			"a2,Grace\n")
	table, err := ReadPersons(path)
	if err != nil {
		t.Fatalf("ReadPersons: %v", err)
	}
	if want := []string{"id", "name"}; !reflect.DeepEqual(table.Header, want) {
		t.Errorf("header = %v, want %v", table.Header, want)
	}
	want := []Person{
		{ID: "a1", Extra: []string{"Ada"}},
		{ID: "a2", Extra: []string{"Grace"}},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %+v, want %+v", table.Rows, want)
	}
	if ids := table.IDs(); !reflect.DeepEqual(ids, []string{"a1", "a2"}) {
		t.Errorf("ids = %v, want [a1 a2]", ids)
	}
}

func TestPersonRoundTrip(t *testing.T) {
	table := &PersonTable{
		Header: []string{"id", "name", "affil"},
		Rows: []Person{
			{ID: "a1", Extra: []string{"Ada", "MIT"}},
			{ID: "a2", Extra: []string{"Grace", "Navy"}},
		},
	}
	path := filepath.Join(t.TempDir(), "person.csv")
	if err := WritePersons(path, table); err != nil {
		t.Fatalf("WritePersons: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "id,name,affil\na1,Ada,MIT\na2,Grace,Navy\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	got, err := ReadPersons(path)
	if err != nil {
		t.Fatalf("ReadPersons: %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("round trip = %+v, want %+v", got, table)
	}
}

func TestReadPersonsRejectsHeader(t *testing.T) {
	path := writeFile(t, "person.csv", "person_id,name\na1,Ada\n")
	if _, err := ReadPersons(path); !errors.Is(err, ErrHeader) {
		t.Errorf("error = %v, want ErrHeader", err)
	}
}

func TestFilterYears(t *testing.T) {
	papers := []Paper{
		{ID: "p1", Year: 2010},
		{ID: "p2", Year: 2011},
		{ID: "p3", Year: 2013},
		{ID: "p4", Year: 2014},
		{ID: "p5", Year: 2015},
	}
	got := FilterYears(papers, 2011, 2014)
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if want := []string{"p2", "p3", "p4"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("kept = %v, want %v", ids, want)
	}
}

func TestRestrictions(t *testing.T) {
	papers := map[string]bool{"p1": true, "p2": true}

	auths := RestrictAuthorships([]Authorship{
		{AuthorID: "a1", PaperID: "p1"},
		{AuthorID: "a2", PaperID: "p9"},
		{AuthorID: "a3", PaperID: "p2"},
	}, papers)
	if want := []Authorship{{"a1", "p1"}, {"a3", "p2"}}; !reflect.DeepEqual(auths, want) {
		t.Errorf("authorships = %v, want %v", auths, want)
	}

	table := &PersonTable{
		Header: []string{"id", "name"},
		Rows: []Person{
			{ID: "a1", Extra: []string{"Ada"}},
			{ID: "a2", Extra: []string{"Grace"}},
			{ID: "a3", Extra: []string{"Brian"}},
			{ID: "a4", Extra: []string{"Edsger"}},
		},
	}
	persons := RestrictPersons(table, AuthorIDSet(auths))
	wantRows := []Person{
		{ID: "a1", Extra: []string{"Ada"}},
		{ID: "a3", Extra: []string{"Brian"}},
	}
	if !reflect.DeepEqual(persons.Rows, wantRows) {
		t.Errorf("persons = %+v, want %+v", persons.Rows, wantRows)
	}
	if !reflect.DeepEqual(persons.Header, table.Header) {
		t.Errorf("header = %v, want %v", persons.Header, table.Header)
	}

	refs := RestrictReferences([]Reference{
		{PaperID: "p1", RefID: "p2"},
		{PaperID: "p1", RefID: "p3"},
		{PaperID: "p3", RefID: "p2"},
	}, papers)
	if want := []Reference{{"p1", "p2"}}; !reflect.DeepEqual(refs, want) {
		t.Errorf("refs = %v, want %v", refs, want)
	}
}

func TestVenuesAndYears(t *testing.T) {
	papers := []Paper{
		{Venue: "WWW", Year: 2013},
		{Venue: "KDD", Year: 2011},
		{Venue: "WWW", Year: 2011},
		{Venue: "ICML", Year: 2012},
	}
	if got, want := Venues(papers), []string{"ICML", "KDD", "WWW"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Venues = %v, want %v", got, want)
	}
	if got, want := Years(papers), []int{2011, 2012, 2013}; !reflect.DeepEqual(got, want) {
		t.Errorf("Years = %v, want %v", got, want)
	}
}

func TestWriteList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venue.csv")
	if err := WriteList(path, []string{"ICML", "Tools, Inc."}); err != nil {
		t.Fatalf("WriteList: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "ICML\n\"Tools, Inc.\"\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}
