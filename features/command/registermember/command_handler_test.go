package registermember_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registermember"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	handler := registermember.NewCommandHandler(store)
	userID := GivenUniqueID(t)

	// act
	result, err := handler.Handle(ctx, registermember.BuildCommand(userID, "Jane Doe"))

	// assert
	require.NoError(t, err)
	assert.Contains(t, result.Message, "Jane Doe")

	user := LoadUser(t, ctx, store, userID)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Nil(t, user.RestrictedUntil)
}

func Test_CommandHandler_Handle_Error_DuplicateID(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	member := GivenMember(t, ctx, store)
	handler := registermember.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, registermember.BuildCommand(member.ID, "Someone Else"))

	// assert
	assert.ErrorIs(t, err, circulation.ErrBadRequest)
	assert.Equal(t, member.Name, LoadUser(t, ctx, store, member.ID).Name)
}
