package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purescan-ai/purescan-backend/internal/view"
)

func TestInitial(t *testing.T) {
	assert.Equal(t, view.Dashboard, view.Initial(true))
	assert.Equal(t, view.Landing, view.Initial(false))
}

func TestNext_Transitions(t *testing.T) {
	tests := []struct {
		name          string
		state         view.State
		event         view.Event
		authenticated bool
		want          view.State
	}{
		{"landing start", view.Landing, view.EventStart, false, view.Auth},
		{"landing pricing", view.Landing, view.EventPricing, false, view.Subscription},
		{"auth login ok", view.Auth, view.EventLoginOK, true, view.Dashboard},
		{"dashboard scan", view.Dashboard, view.EventScan, true, view.Scan},
		{"dashboard upgrade", view.Dashboard, view.EventUpgrade, true, view.Subscription},
		{"scan complete", view.Scan, view.EventScanComplete, true, view.Result},
		{"scan cancel authenticated", view.Scan, view.EventScanCancel, true, view.Dashboard},
		{"scan cancel anonymous", view.Scan, view.EventScanCancel, false, view.Landing},
		{"result back authenticated", view.Result, view.EventBack, true, view.Dashboard},
		{"result back anonymous", view.Result, view.EventBack, false, view.Landing},
		{"result scan new", view.Result, view.EventScanNew, true, view.Scan},
		{"subscription upgrade ok", view.Subscription, view.EventUpgradeOK, true, view.Dashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.Next(tt.state, tt.event, tt.authenticated)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_CrossCuttingEvents(t *testing.T) {
	allStates := []view.State{
		view.Landing, view.Auth, view.Dashboard, view.Scan,
		view.Result, view.Subscription, view.Profile,
	}

	t.Run("logout always leads to landing", func(t *testing.T) {
		for _, s := range allStates {
			assert.Equal(t, view.Landing, view.Next(s, view.EventLogout, true), "from %s", s)
		}
	})

	t.Run("need auth always leads to auth", func(t *testing.T) {
		for _, s := range allStates {
			assert.Equal(t, view.Auth, view.Next(s, view.EventNeedAuth, false), "from %s", s)
		}
	})

	t.Run("profile requires session", func(t *testing.T) {
		assert.Equal(t, view.Profile, view.Next(view.Dashboard, view.EventProfile, true))
		assert.Equal(t, view.Landing, view.Next(view.Landing, view.EventProfile, false))
	})

	t.Run("history open requires session", func(t *testing.T) {
		assert.Equal(t, view.Result, view.Next(view.Dashboard, view.EventHistoryOpen, true))
		assert.Equal(t, view.Landing, view.Next(view.Landing, view.EventHistoryOpen, false))
	})
}

func TestNext_UnknownEventKeepsState(t *testing.T) {
	tests := []struct {
		state view.State
		event view.Event
	}{
		{view.Landing, view.EventScanComplete},
		{view.Auth, view.EventScan},
		{view.Dashboard, view.EventLoginOK},
		{view.Scan, view.EventStart},
		{view.Result, view.EventUpgradeOK},
		{view.Subscription, view.EventBack},
		{view.Profile, view.EventScanNew},
		{view.Dashboard, view.Event("totally-unknown")},
	}

	for _, tt := range tests {
		got := view.Next(tt.state, tt.event, true)
		assert.Equal(t, tt.state, got, "event %q from %s", tt.event, tt.state)
	}
}

// Полный пользовательский путь: лендинг, вход, сканирование, результат,
// повторное сканирование и выход.
func TestNext_FullJourney(t *testing.T) {
	s := view.Initial(false)
	assert.Equal(t, view.Landing, s)

	s = view.Next(s, view.EventStart, false)
	assert.Equal(t, view.Auth, s)

	s = view.Next(s, view.EventLoginOK, true)
	assert.Equal(t, view.Dashboard, s)

	s = view.Next(s, view.EventScan, true)
	assert.Equal(t, view.Scan, s)

	s = view.Next(s, view.EventScanComplete, true)
	assert.Equal(t, view.Result, s)

	s = view.Next(s, view.EventScanNew, true)
	assert.Equal(t, view.Scan, s)

	s = view.Next(s, view.EventScanCancel, true)
	assert.Equal(t, view.Dashboard, s)

	s = view.Next(s, view.EventLogout, true)
	assert.Equal(t, view.Landing, s)
}
