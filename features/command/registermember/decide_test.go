package registermember_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/registermember"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_Decide_Success_RegistersActiveMemberWithDefaults(t *testing.T) {
	// arrange
	now := testutil.At(t, "2024-03-01 09:00")
	command := registermember.BuildCommand("M-2024-001", "kim@example.test", "Kim Reader", now)

	// act
	result := registermember.Decide(registermember.State{}, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes, 1)

	member, ok := result.Changes[0].Entity.(core.Member)
	require.True(t, ok)
	assert.Equal(t, core.MemberActive, member.Status)
	assert.Equal(t, 5, member.MaxBooks)
	assert.Equal(t, now.AddDate(0, 0, 365), member.ExpiresAt)
	assert.Equal(t, core.Cents(0), member.FineBalance)
}

func Test_Decide_UsesOverrides_WhenProvided(t *testing.T) {
	// arrange
	now := testutil.At(t, "2024-03-01 09:00")
	expiresAt := now.AddDate(2, 0, 0)
	command := registermember.BuildCommand("M-2024-002", "kim@example.test", "Kim Reader", now)
	command.MaxBooks = 10
	command.ExpiresAt = &expiresAt

	// act
	result := registermember.Decide(registermember.State{}, command)

	// assert
	require.NoError(t, result.HasError())
	member := result.Changes[0].Entity.(core.Member)
	assert.Equal(t, 10, member.MaxBooks)
	assert.Equal(t, expiresAt, member.ExpiresAt)
}

func Test_Decide_Idempotent_WhenMembershipNumberTaken(t *testing.T) {
	// arrange
	now := testutil.At(t, "2024-03-01 09:00")
	existing := testutil.GivenMember("Kim Reader")
	command := registermember.BuildCommand(existing.MembershipNumber, existing.Email, existing.Name, now)

	// act
	result := registermember.Decide(registermember.State{Existing: &existing}, command)

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenRequiredFieldMissing(t *testing.T) {
	now := testutil.At(t, "2024-03-01 09:00")

	tests := []struct {
		name    string
		command registermember.Command
	}{
		{"missing number", registermember.BuildCommand("", "kim@example.test", "Kim Reader", now)},
		{"missing email", registermember.BuildCommand("M-2024-001", "", "Kim Reader", now)},
		{"missing name", registermember.BuildCommand("M-2024-001", "kim@example.test", "", now)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := registermember.Decide(registermember.State{}, tc.command)

			assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount)
		})
	}
}
