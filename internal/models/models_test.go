package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_CoversDay(t *testing.T) {
	t.Run("SingleDay", func(t *testing.T) {
		r := &Request{Type: RequestTypeDaily, LeaveDate: "2026-03-10"}
		assert.True(t, r.CoversDay("2026-03-10"))
		assert.False(t, r.CoversDay("2026-03-09"))
		assert.False(t, r.CoversDay("2026-03-11"))
	})

	t.Run("Range", func(t *testing.T) {
		r := &Request{Type: RequestTypeDaily, LeaveDate: "2026-03-10", ReturnDate: "2026-03-12"}
		assert.True(t, r.CoversDay("2026-03-10"))
		assert.True(t, r.CoversDay("2026-03-11"))
		assert.True(t, r.CoversDay("2026-03-12"))
		assert.False(t, r.CoversDay("2026-03-13"))
	})

	t.Run("HourlyNeverCovers", func(t *testing.T) {
		r := &Request{Type: RequestTypeHourly, LeaveDate: "2026-03-10"}
		assert.False(t, r.CoversDay("2026-03-10"))
	})
}

func TestUser_CanDecide(t *testing.T) {
	super := &User{Role: RoleSuperAdmin}
	admin := &User{Role: RoleAdmin}
	pm := &User{Role: RoleProjectManager}
	worker := &User{Role: RoleWorker}

	assert.True(t, super.CanDecide(RequestTypeDaily))
	assert.False(t, super.CanDecide(RequestTypeHourly))
	assert.True(t, admin.CanDecide(RequestTypeHourly))
	assert.False(t, admin.CanDecide(RequestTypeDaily))
	assert.False(t, pm.CanDecide(RequestTypeDaily))
	assert.False(t, worker.CanDecide(RequestTypeHourly))

	assert.True(t, super.IsManager())
	assert.True(t, pm.IsManager())
	assert.False(t, worker.IsManager())
}
