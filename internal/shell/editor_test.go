package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorInactiveIgnoresInput(t *testing.T) {
	s := NewSession([]string{"C:"})
	s.History = []string{"DIR"}
	assert.False(t, s.InsertText("x"))
	assert.False(t, s.SetLine("x"))
	assert.False(t, s.Backspace())
	assert.False(t, s.HistoryUp())
	assert.False(t, s.HistoryDown())
	_, ok := s.TakeLine()
	assert.False(t, ok)
	assert.Empty(t, s.Input)
	assert.Equal(t, -1, s.HistoryCursor)
}

func TestInsertAndBackspace(t *testing.T) {
	s := armed()
	assert.True(t, s.InsertText("DIR"))
	assert.True(t, s.InsertText("é"))
	assert.Equal(t, "DIRé", s.Input)
	assert.True(t, s.Backspace())
	assert.Equal(t, "DIR", s.Input)
	for s.Backspace() {
	}
	assert.Empty(t, s.Input)
	assert.False(t, s.Backspace())
}

func TestHistoryClamps(t *testing.T) {
	s := armed()
	s.History = []string{"newest", "middle", "oldest"}

	for range 5 {
		s.HistoryUp()
	}
	assert.Equal(t, 2, s.HistoryCursor)
	assert.Equal(t, "oldest", s.Input)

	s.HistoryDown()
	assert.Equal(t, "middle", s.Input)
	for range 5 {
		s.HistoryDown()
	}
	assert.Equal(t, -1, s.HistoryCursor)
	assert.Empty(t, s.Input)

	empty := armed()
	assert.False(t, empty.HistoryUp())
	assert.Equal(t, -1, empty.HistoryCursor)
}

func TestTakeLine(t *testing.T) {
	s := armed()
	s.Output = "\nC:> "
	s.History = []string{"VER"}
	s.HistoryUp()
	s.SetLine("  CD NOTES ")

	line, ok := s.TakeLine()
	assert.True(t, ok)
	assert.Equal(t, "CD NOTES", line)
	assert.Equal(t, "\nC:>   CD NOTES \n", s.Output)
	assert.Equal(t, []string{"CD NOTES", "VER"}, s.History)
	assert.Equal(t, -1, s.HistoryCursor)
	assert.Empty(t, s.Input)
	assert.False(t, s.PromptActive)

	s.Arm()
	s.InsertText("   ")
	line, ok = s.TakeLine()
	assert.True(t, ok)
	assert.Empty(t, line)
	assert.Len(t, s.History, 2)
}

func TestArm(t *testing.T) {
	s := NewSession([]string{"C:", "GAMES"})
	s.Input = "stale"
	s.HistoryCursor = 3
	s.Arm()
	assert.Equal(t, "\nC:\\GAMES> ", s.Output)
	assert.Empty(t, s.Input)
	assert.Equal(t, -1, s.HistoryCursor)
	assert.True(t, s.PromptActive)
}

func TestCloneIsDeep(t *testing.T) {
	s := armed()
	s.History = []string{"A"}
	c := s.Clone()
	c.Cwd[0] = "D:"
	c.History[0] = "B"
	assert.Equal(t, []string{"C:"}, s.Cwd)
	assert.Equal(t, []string{"A"}, s.History)
}
