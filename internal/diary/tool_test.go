package diary

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonGDunne/joplin-diary-tool/internal/joplin"
	"github.com/SimonGDunne/joplin-diary-tool/internal/location"
	"github.com/SimonGDunne/joplin-diary-tool/internal/weather"
)

type fakeNotes struct {
	notes       map[string]*joplin.Note // id -> note
	byTitle     map[string]string       // title -> id
	nextID      int
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{
		notes:   map[string]*joplin.Note{},
		byTitle: map[string]string{},
	}
}

func (f *fakeNotes) Ping(ctx context.Context) error { return nil }

func (f *fakeNotes) FindFolderByTitle(ctx context.Context, title string) (string, error) {
	return "folder-1", nil
}

func (f *fakeNotes) FindNoteByTitle(ctx context.Context, folderID, title string) (*joplin.Note, error) {
	id, ok := f.byTitle[title]
	if !ok {
		return nil, nil
	}
	return f.notes[id], nil
}

func (f *fakeNotes) CreateNote(ctx context.Context, folderID, title, body string) (*joplin.Note, error) {
	f.createCalls++
	f.nextID++
	id := fmt.Sprintf("n%d", f.nextID)
	note := &joplin.Note{ID: id, Title: title, Body: body, ParentID: folderID}
	f.notes[id] = note
	f.byTitle[title] = id
	return note, nil
}

func (f *fakeNotes) UpdateNote(ctx context.Context, noteID, body string) error {
	f.updateCalls++
	note, ok := f.notes[noteID]
	if !ok {
		return &joplin.APIError{StatusCode: 404, Body: "not found"}
	}
	note.Body = body
	return nil
}

func (f *fakeNotes) DeleteNote(ctx context.Context, noteID string) error {
	f.deleteCalls++
	note, ok := f.notes[noteID]
	if !ok {
		return &joplin.APIError{StatusCode: 404, Body: "not found"}
	}
	delete(f.byTitle, note.Title)
	delete(f.notes, noteID)
	return nil
}

func (f *fakeNotes) GetNote(ctx context.Context, noteID string) (*joplin.Note, error) {
	note, ok := f.notes[noteID]
	if !ok {
		return nil, &joplin.APIError{StatusCode: 404, Body: "not found"}
	}
	return note, nil
}

type fakeWeather struct {
	result *weather.Result
	err    error
}

func (f fakeWeather) Fetch(ctx context.Context, loc string) (*weather.Result, error) {
	return f.result, f.err
}

type fakeLocation struct {
	value string
}

func (f fakeLocation) Resolve(ctx context.Context, override string) location.Result {
	if override != "" {
		return location.Result{Value: override, Source: location.SourceManual}
	}
	return location.Result{Value: f.value, Source: location.SourceGPS}
}

// scriptPrompter feeds canned answers and records what was asked.
type scriptPrompter struct {
	lines    []string
	confirms []bool
	body     []string
	asked    []string
}

func (p *scriptPrompter) Line(prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.lines) == 0 {
		return "", fmt.Errorf("unexpected Line prompt: %s", prompt)
	}
	answer := p.lines[0]
	p.lines = p.lines[1:]
	return answer, nil
}

func (p *scriptPrompter) Confirm(prompt string) (bool, error) {
	p.asked = append(p.asked, prompt)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected Confirm prompt: %s", prompt)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptPrompter) Body() ([]string, error) {
	return p.body, nil
}

func newTool(notes *fakeNotes, w fakeWeather, prompt *scriptPrompter) *Tool {
	return NewTool(Config{
		Notes:       notes,
		Weather:     w,
		Location:    fakeLocation{value: "Garrynacurry"},
		Prompter:    prompt,
		FolderTitle: "Diary",
		Out:         &bytes.Buffer{},
	})
}

func sunny() fakeWeather {
	return fakeWeather{result: &weather.Result{
		Description: "Sunny",
		TempC:       23,
		HasTemp:     true,
		Source:      weather.SourcePrimary,
	}}
}

var testDate = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

func TestRunCreatesEntry(t *testing.T) {
	notes := newFakeNotes()
	prompt := &scriptPrompter{body: []string{"- swam in the river"}}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.Run(context.Background(), Options{Date: testDate}))

	assert.Equal(t, 1, notes.createCalls)
	assert.Equal(t, 0, notes.updateCalls)

	id := notes.byTitle["2025/07/15"]
	require.NotEmpty(t, id)
	body := notes.notes[id].Body
	assert.Contains(t, body, "Sunny +23°C")
	assert.Contains(t, body, "Tuesday")
	assert.Contains(t, body, "Garrynacurry")
	assert.Contains(t, body, "- swam in the river")
}

func TestRunDryRunNeverWrites(t *testing.T) {
	notes := newFakeNotes()
	prompt := &scriptPrompter{}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.Run(context.Background(), Options{Date: testDate, DryRun: true}))

	assert.Equal(t, 0, notes.createCalls)
	assert.Equal(t, 0, notes.updateCalls)
}

func TestRunExistingEntryDeclined(t *testing.T) {
	notes := newFakeNotes()
	_, err := notes.CreateNote(context.Background(), "folder-1", "2025/07/15", "old body")
	require.NoError(t, err)
	notes.createCalls = 0

	prompt := &scriptPrompter{confirms: []bool{false}, body: []string{"- new content"}}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.Run(context.Background(), Options{Date: testDate}))

	assert.Equal(t, 0, notes.createCalls)
	assert.Equal(t, 0, notes.updateCalls)
	id := notes.byTitle["2025/07/15"]
	assert.Equal(t, "old body", notes.notes[id].Body)
}

func TestRunExistingEntryOverwritten(t *testing.T) {
	notes := newFakeNotes()
	_, err := notes.CreateNote(context.Background(), "folder-1", "2025/07/15", "old body")
	require.NoError(t, err)
	notes.createCalls = 0

	prompt := &scriptPrompter{confirms: []bool{true}, body: []string{"- new content"}}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.Run(context.Background(), Options{Date: testDate}))

	assert.Equal(t, 0, notes.createCalls)
	assert.Equal(t, 1, notes.updateCalls)
	id := notes.byTitle["2025/07/15"]
	assert.Contains(t, notes.notes[id].Body, "- new content")
}

func TestRunWeatherFailureFallsBackToManualPrompt(t *testing.T) {
	notes := newFakeNotes()
	prompt := &scriptPrompter{
		lines: []string{"Mild, rainy. 11C"},
		body:  []string{"- stayed inside"},
	}
	tool := newTool(notes, fakeWeather{err: fmt.Errorf("wttr.in unreachable")}, prompt)

	require.NoError(t, tool.Run(context.Background(), Options{Date: testDate}))

	assert.Equal(t, 1, notes.createCalls)
	id := notes.byTitle["2025/07/15"]
	assert.Contains(t, notes.notes[id].Body, "Mild, rainy. +11°C")
}

func TestRunLocationOverride(t *testing.T) {
	notes := newFakeNotes()
	prompt := &scriptPrompter{body: []string{"- travelled"}}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.Run(context.Background(), Options{
		Date:             testDate,
		LocationOverride: "Dublin",
	}))

	id := notes.byTitle["2025/07/15"]
	assert.Contains(t, notes.notes[id].Body, "Dublin")
}

func TestRunIntegrationTestAgainstFake(t *testing.T) {
	notes := newFakeNotes()
	prompt := &scriptPrompter{}
	tool := newTool(notes, sunny(), prompt)

	require.NoError(t, tool.RunIntegrationTest(context.Background()))

	// The test entry must be cleaned up.
	assert.Empty(t, notes.notes)
	assert.Equal(t, 1, notes.createCalls)
	assert.Equal(t, 1, notes.deleteCalls)
}
