package triprepo_test

import (
	"context"
	"testing"

	"transportation/internal/adapters/out/postgres/pgtest"
	"transportation/internal/adapters/out/postgres/triprepo"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// TripRepositoryIntegrationTestSuite runs the trip repository against a
// PostgreSQL container.
type TripRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *triprepo.GormTripRepository
	tracker    *MockAggregateTracker
}

func (suite *TripRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *TripRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = triprepo.NewGormTripRepository(suite.database.DB, suite.tracker)
}

func (suite *TripRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *TripRepositoryIntegrationTestSuite) newTrip(state lifecycle.TripState, destinations ...string) *trip.Trip {
	t, err := trip.NewTrip(kernel.NewUUID(), state)
	suite.Require().NoError(err)

	specs := make([]trip.PackageLineSpec, 0, len(destinations))
	for _, d := range destinations {
		specs = append(specs, trip.PackageLineSpec{PackageID: kernel.NewUUID(), Destination: kernel.ParseDestination(d)})
		t.AppendStop(kernel.ParseDestination(d))
	}
	t.ReplacePackages(specs)
	return t
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	t := suite.newTrip(lifecycle.Loaded, "B", "A", "C")

	suite.Require().NoError(suite.repository.Add(ctx, t))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", t.ID(), t)

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(t.ID(), got.ID())
	suite.Equal(lifecycle.Loaded, got.State())
	suite.Equal(lineSpecs(t), lineSpecs(got), "lines keep their ids and order")
	suite.Equal(stopLabels(t), stopLabels(got))
	suite.Equal(t.Stops()[0].ID(), got.Stops()[0].ID())
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_InvalidTrip() {
	err := suite.repository.Add(context.Background(), &trip.Trip{})
	suite.ErrorIs(err, trip.ErrTripIsNotConstructed)
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_ReplacesLinesAndStops() {
	ctx := context.Background()
	t := suite.newTrip(lifecycle.Planned, "A", "B")
	suite.Require().NoError(suite.repository.Add(ctx, t))

	specs := lineSpecs(t)
	specs[1].EndEvent = lifecycle.StageDelivered
	specs[1].EndDestination = kernel.ParseDestination("Z")
	kept := specs[1]
	added := trip.PackageLineSpec{PackageID: kernel.NewUUID(), Destination: kernel.ParseDestination("C")}
	t.ReplacePackages([]trip.PackageLineSpec{kept, added})
	t.ReplaceStops(t.Stops()[1:])
	t.AppendStop(kernel.ParseDestination("C"))
	suite.Require().NoError(t.SetState(lifecycle.Completed))

	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(lifecycle.Completed, got.State())
	suite.Equal(lineSpecs(t), lineSpecs(got))
	suite.Equal([]string{"B", "C"}, stopLabels(got))

	var lines int64
	suite.Require().NoError(suite.database.DB.Model(&triprepo.PackageLineDTO{}).Count(&lines).Error)
	suite.EqualValues(2, lines, "the removed line row is deleted")
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_EmptiesLines() {
	ctx := context.Background()
	t := suite.newTrip(lifecycle.Planned, "A")
	suite.Require().NoError(suite.repository.Add(ctx, t))

	t.ReplacePackages(nil)
	t.ReplaceStops(nil)
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Empty(got.Packages())
	suite.Empty(got.Stops())
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_ForeignStopIDStaysOnItsTrip() {
	ctx := context.Background()
	a := suite.newTrip(lifecycle.Planned, "A")
	b := suite.newTrip(lifecycle.Planned, "B")
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, b))

	stored, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	stored.ReplaceStops([]*trip.StopLine{trip.NewStopLine(a.Stops()[0].ID(), kernel.ParseDestination("B"))})
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	gotA, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"A"}, stopLabels(gotA))
	suite.Equal(a.Stops()[0].ID(), gotA.Stops()[0].ID())

	gotB, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"B"}, stopLabels(gotB))
	suite.NotEqual(a.Stops()[0].ID(), gotB.Stops()[0].ID())
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_LineIDsAreScopedToTheTrip() {
	ctx := context.Background()
	a := suite.newTrip(lifecycle.Planned, "A")
	suite.Require().NoError(suite.repository.Add(ctx, a))

	b, err := trip.NewTrip(kernel.NewUUID(), lifecycle.Planned)
	suite.Require().NoError(err)
	reused := a.Packages()[0].Spec()
	reused.PackageID = kernel.NewUUID()
	b.ReplacePackages([]trip.PackageLineSpec{reused})
	b.ReplaceStops([]*trip.StopLine{trip.NewStopLine(a.Stops()[0].ID(), kernel.ParseDestination("B"))})
	suite.Require().NoError(suite.repository.Add(ctx, b))

	gotA, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(lineSpecs(a), lineSpecs(gotA))
	suite.Equal([]string{"A"}, stopLabels(gotA))

	gotB, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(lineSpecs(b), lineSpecs(gotB))
	suite.Equal([]string{"B"}, stopLabels(gotB))
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_UnknownTrip() {
	err := suite.repository.Update(context.Background(), suite.newTrip(lifecycle.Planned, "A"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TripRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TripRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	t := suite.newTrip(lifecycle.Planned, "A")
	suite.Require().NoError(suite.repository.Add(ctx, t))

	suite.Require().NoError(suite.repository.Delete(ctx, t.ID()))

	_, err := suite.repository.Get(ctx, t.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	var stops int64
	suite.Require().NoError(suite.database.DB.Model(&triprepo.StopLineDTO{}).Count(&stops).Error)
	suite.Zero(stops, "child rows are cascaded")

	suite.ErrorIs(suite.repository.Delete(ctx, t.ID()), errs.ErrObjectNotFound)
}

func (suite *TripRepositoryIntegrationTestSuite) TestListByStates() {
	ctx := context.Background()
	planned := suite.newTrip(lifecycle.Planned, "A")
	transit := suite.newTrip(lifecycle.Transit, "B")
	completed := suite.newTrip(lifecycle.Completed, "C")
	for _, t := range []*trip.Trip{planned, transit, completed} {
		suite.Require().NoError(suite.repository.Add(ctx, t))
	}

	got, err := suite.repository.ListByStates(ctx, lifecycle.Planned, lifecycle.Transit)
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(got))
	for _, t := range got {
		ids = append(ids, t.ID())
		suite.Len(t.Packages(), 1)
	}
	suite.ElementsMatch([]kernel.UUID{planned.ID(), transit.ID()}, ids)

	none, err := suite.repository.ListByStates(ctx)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func lineSpecs(t *trip.Trip) []trip.PackageLineSpec {
	specs := make([]trip.PackageLineSpec, 0, len(t.Packages()))
	for _, l := range t.Packages() {
		specs = append(specs, l.Spec())
	}
	return specs
}

func stopLabels(t *trip.Trip) []string {
	labels := make([]string, 0, len(t.Stops()))
	for _, s := range t.Stops() {
		labels = append(labels, s.Stop().String())
	}
	return labels
}

func TestTripRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(TripRepositoryIntegrationTestSuite))
}
