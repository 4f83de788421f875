package reading

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prahar/internal/llm"
	"github.com/abhisek/prahar/internal/prahar"
)

func winner(t *testing.T, i int) prahar.Prahar {
	t.Helper()
	p, ok := prahar.ByIndex(i)
	require.True(t, ok)
	return p
}

func scenarioAnswers() []int {
	return []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 0}
}

func TestNarrate_ReturnsReading(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{JSON: json.RawMessage(`{"reading":"  You thrive at noon.  "}`)})
	n := New(mock, time.Second, nil)

	got := n.Narrate(context.Background(), prahar.Questions(), scenarioAnswers(), winner(t, 3))
	assert.Equal(t, "You thrive at noon.", got)

	p := mock.LastPrompt()
	assert.Equal(t, Schema, p.Schema)
	assert.Contains(t, p.User, "Tritiya Prahar")
}

func TestNarrate_ErrorYieldsEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Err: errors.New("boom")})
	n := New(mock, time.Second, nil)

	assert.Empty(t, n.Narrate(context.Background(), prahar.Questions(), scenarioAnswers(), winner(t, 3)))
}

func TestNarrate_SchemaFailureYieldsEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{JSON: json.RawMessage(`{"text":"nope"}`)})
	n := New(mock, 0, nil)

	assert.Empty(t, n.Narrate(context.Background(), prahar.Questions(), scenarioAnswers(), winner(t, 1)))
}

func TestNarrate_NilNarrator(t *testing.T) {
	var n *Narrator
	assert.Empty(t, n.Narrate(context.Background(), nil, nil, prahar.Prahar{}))
	assert.Empty(t, New(nil, 0, nil).Narrate(context.Background(), nil, nil, prahar.Prahar{}))
}

func TestUserPrompt(t *testing.T) {
	qs := prahar.Questions()
	got := UserPrompt(qs, scenarioAnswers(), winner(t, 3))

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.True(t, strings.HasPrefix(lines[0], "Result: Tritiya Prahar (Midday Prahar) (midday)."), lines[0])
	assert.Contains(t, got, "1. "+qs[0].Question+" -> "+qs[0].Options[2])
	assert.Contains(t, got, "10. "+qs[9].Question+" -> "+qs[9].Options[0])
}

func TestMockReply_NamesPrahar(t *testing.T) {
	p := llm.Prompt{User: UserPrompt(prahar.Questions(), scenarioAnswers(), winner(t, 3))}
	r := MockReply(p)
	require.NoError(t, llm.Validate(Schema, r.JSON))
	assert.Contains(t, string(r.JSON), "Tritiya Prahar")
}
