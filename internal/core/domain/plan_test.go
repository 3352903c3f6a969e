package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestPlan_Validate(t *testing.T) {
	plan, err := domain.ParseSpec(leinSpec)
	require.NoError(t, err)
	assert.NoError(t, plan.Validate())
}

func TestPlan_Validate_MissingDependency(t *testing.T) {
	plan, err := domain.ParseSpec("clean\ncompile: clean; deps")
	require.NoError(t, err)

	err = plan.Validate()
	require.ErrorIs(t, err, domain.ErrMissingDependency)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "compile", zErr.Metadata()["task"])
	assert.Equal(t, "deps", zErr.Metadata()["dependency"])
}

func TestPlan_Validate_Cycle(t *testing.T) {
	plan, err := domain.ParseSpec("a: c\nb: a\nc: b\nd")
	require.NoError(t, err)

	err = plan.Validate()
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "a -> c -> b -> a", zErr.Metadata()["cycle"])
}

func TestPlan_Validate_SelfDependency(t *testing.T) {
	plan, err := domain.ParseSpec("a: a")
	require.NoError(t, err)
	require.ErrorIs(t, plan.Validate(), domain.ErrCycleDetected)
}

func TestPlan_Tasks(t *testing.T) {
	plan, err := domain.ParseSpec("b\na: b")
	require.NoError(t, err)

	var names []string
	for task := range plan.Tasks() {
		names = append(names, task.Name.String())
	}
	assert.Equal(t, []string{"b", "a"}, names)
	assert.Equal(t, map[string][]string{"a": {"b"}, "b": {}}, plan.Dependencies())
}

func TestTaskStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.TaskStatus
		want     bool
	}{
		{domain.StatusPending, domain.StatusRunning, true},
		{domain.StatusPending, domain.StatusComplete, false},
		{domain.StatusRunning, domain.StatusComplete, true},
		{domain.StatusRunning, domain.StatusFailed, true},
		{domain.StatusRunning, domain.StatusPending, false},
		{domain.StatusComplete, domain.StatusFailed, false},
		{domain.StatusFailed, domain.StatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("compile")
	b := domain.NewInternedStrings([]string{"compile"})[0]

	assert.Equal(t, a, b)
	assert.Equal(t, "compile", a.String())
	assert.False(t, a.IsZero())
	assert.True(t, domain.InternedString{}.IsZero())
	assert.Empty(t, domain.InternedString{}.String())
}
