package services_test

import (
	"testing"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func stopLabels(tr *trip.Trip) []string {
	var out []string
	for _, s := range tr.Stops() {
		out = append(out, s.Stop().String())
	}
	return out
}

func TestReconcileStops(t *testing.T) {
	p1, p2, p3 := newParcel(t, "X"), newParcel(t, "Y"), newParcel(t, "X")

	t.Run("appends missing destinations in first-seen order", func(t *testing.T) {
		tr := newTrip(t, lifecycle.Planned, carry(p1, "Y"), carry(p2, "X"), carry(p3, "Y"))

		appended := services.ReconcileStops(tr)

		assert.Len(t, appended, 2)
		assert.Equal(t, []string{"Y", "X"}, stopLabels(tr))
	})

	t.Run("never removes or reorders existing stops", func(t *testing.T) {
		tr := newTrip(t, lifecycle.Planned, carry(p1, "X"))
		tr.ReplaceStops([]*trip.StopLine{
			trip.NewStopLine(kernel.UUID{}, kernel.ParseDestination("W")),
			trip.NewStopLine(kernel.UUID{}, kernel.ParseDestination("")),
		})
		before := tr.Stops()

		services.ReconcileStops(tr)

		after := tr.Stops()
		assert.Equal(t, before, after[:len(before)])
		assert.Equal(t, []string{"W", "", "X"}, stopLabels(tr))
	})

	t.Run("ignores empty destinations and existing stops", func(t *testing.T) {
		tr := newTrip(t, lifecycle.Planned, carry(p1, ""), carry(p2, "X"))
		tr.AppendStop(kernel.ParseDestination("X"))

		appended := services.ReconcileStops(tr)

		assert.Empty(t, appended)
		assert.Equal(t, []string{"X"}, stopLabels(tr))
	})

	t.Run("is idempotent", func(t *testing.T) {
		tr := newTrip(t, lifecycle.Planned, carry(p1, "X"), carry(p2, "Y"))

		services.ReconcileStops(tr)
		second := services.ReconcileStops(tr)

		assert.Empty(t, second)
		assert.Equal(t, []string{"X", "Y"}, stopLabels(tr))
	})
}
