package room

import "github.com/cocode-dev/cocode/pkg/api"

// EditorState is the replicated state of the code editor.
// The text itself is an opaque blob, the last write wins.
type EditorState struct {
	code     *string
	language string
	input    string
	output   string
	cursors  map[string]api.Cursor
}

func newEditor() EditorState { return EditorState{cursors: make(map[string]api.Cursor)} }

func (e *EditorState) SetCode(code string)     { e.code = &code }
func (e *EditorState) SetLanguage(lang string) { e.language = lang }
func (e *EditorState) SetInput(in string)      { e.input = in }
func (e *EditorState) SetOutput(out string)    { e.output = out }

// Code returns nil until the first edit.
func (e *EditorState) Code() *string    { return e.code }
func (e *EditorState) Language() string { return e.language }

func (e *EditorState) SetCursor(pid string, c api.Cursor) { e.cursors[pid] = c }

func (e *EditorState) RemoveCursor(pid string) bool {
	_, ok := e.cursors[pid]
	delete(e.cursors, pid)
	return ok
}

func (e *EditorState) Cursor(pid string) (api.Cursor, bool) { c, ok := e.cursors[pid]; return c, ok }

func (e *EditorState) Cursors() int { return len(e.cursors) }

// Snapshot copies the state for the late-joiner sync.
func (e *EditorState) Snapshot() api.SyncEditorResponse {
	cursors := make(map[string]api.Cursor, len(e.cursors))
	for k, v := range e.cursors {
		cursors[k] = v
	}
	var code *string
	if e.code != nil {
		c := *e.code
		code = &c
	}
	return api.SyncEditorResponse{
		Code:     code,
		Language: e.language,
		Cursors:  cursors,
		Input:    e.input,
		Output:   e.output,
	}
}
