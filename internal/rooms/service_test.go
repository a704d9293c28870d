package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	roomTypes map[string]*RoomType
	rooms     []Room
	records   []BookingRecord
	created   *BookingRecord
	err       error
}

func (f *fakeRepo) CreateRoomType(ctx context.Context, roomType *RoomType) error {
	if f.err != nil {
		return f.err
	}
	roomType.ID = uuid.New()
	if f.roomTypes == nil {
		f.roomTypes = map[string]*RoomType{}
	}
	f.roomTypes[roomType.Code] = roomType
	return nil
}

func (f *fakeRepo) GetRoomTypeByCode(ctx context.Context, code string) (*RoomType, error) {
	if rt, ok := f.roomTypes[code]; ok {
		return rt, nil
	}
	return nil, ErrRoomTypeNotFound
}

func (f *fakeRepo) GetAllRoomTypes(ctx context.Context) ([]RoomType, error) {
	var list []RoomType
	for _, rt := range f.roomTypes {
		list = append(list, *rt)
	}
	return list, nil
}

func (f *fakeRepo) UpdateRoomType(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*RoomType, error) {
	for _, rt := range f.roomTypes {
		if rt.ID == id {
			if v, ok := updates["nightly_rate"]; ok {
				rt.NightlyRate = v.(float64)
			}
			if v, ok := updates["max_occupancy"]; ok {
				rt.MaxOccupancy = v.(int)
			}
			if v, ok := updates["description"]; ok {
				rt.Description = v.(string)
			}
			return rt, nil
		}
	}
	return nil, ErrRoomTypeNotFound
}

func (f *fakeRepo) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	for _, room := range f.rooms {
		if room.RoomTypeID == id {
			return ErrRoomTypeInUse
		}
	}
	for code, rt := range f.roomTypes {
		if rt.ID == id {
			delete(f.roomTypes, code)
			return nil
		}
	}
	return ErrRoomTypeNotFound
}

func (f *fakeRepo) CreateRoom(ctx context.Context, room *Room) error {
	room.ID = uuid.New()
	f.rooms = append(f.rooms, *room)
	return nil
}

func (f *fakeRepo) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	for i := range f.rooms {
		if f.rooms[i].ID == id {
			room := f.rooms[i]
			if room.RoomType == nil {
				for _, rt := range f.roomTypes {
					if rt.ID == room.RoomTypeID {
						room.RoomType = rt
					}
				}
			}
			return &room, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (f *fakeRepo) GetRoomsByType(ctx context.Context, roomTypeID uuid.UUID) ([]Room, error) {
	var list []Room
	for _, room := range f.rooms {
		if room.RoomTypeID == roomTypeID {
			list = append(list, room)
		}
	}
	return list, nil
}

func (f *fakeRepo) FindFreeRooms(ctx context.Context, roomTypeID uuid.UUID, arrival, departure time.Time) ([]Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []Room
	for _, room := range f.rooms {
		if room.RoomTypeID != roomTypeID {
			continue
		}
		free := true
		for _, rec := range f.records {
			if rec.RoomID == room.ID && rec.Arrival.Before(departure) && rec.Departure.After(arrival) {
				free = false
				break
			}
		}
		if free {
			if room.RoomType == nil {
				for _, rt := range f.roomTypes {
					if rt.ID == room.RoomTypeID {
						room.RoomType = rt
					}
				}
			}
			list = append(list, room)
		}
	}
	return list, nil
}

func (f *fakeRepo) CreateBookingRecord(ctx context.Context, record *BookingRecord) error {
	for _, rec := range f.records {
		if rec.RoomID == record.RoomID && rec.Arrival.Before(record.Departure) && rec.Departure.After(record.Arrival) {
			return ErrRoomNoLongerAvailable
		}
	}
	record.ID = uuid.New()
	f.records = append(f.records, *record)
	f.created = record
	return nil
}

func (f *fakeRepo) GetBookingByConfirmation(ctx context.Context, confirmationNumber int64) (*BookingRecord, error) {
	for i := range f.records {
		if f.records[i].ConfirmationNumber == confirmationNumber {
			return &f.records[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

type fakeHolds struct {
	holders  map[string]string
	released []string
}

func (f *fakeHolds) Hold(ctx context.Context, roomID, sessionID string) (bool, error) {
	if f.holders == nil {
		f.holders = map[string]string{}
	}
	if holder, held := f.holders[roomID]; held {
		return holder == sessionID, nil
	}
	f.holders[roomID] = sessionID
	return true, nil
}

func (f *fakeHolds) IsHeld(ctx context.Context, roomID, sessionID string) (bool, error) {
	holder, held := f.holders[roomID]
	return held && holder != sessionID, nil
}

func (f *fakeHolds) Release(ctx context.Context, roomID string) error {
	delete(f.holders, roomID)
	f.released = append(f.released, roomID)
	return nil
}

func (f *fakeHolds) ReleaseOwned(ctx context.Context, roomID, sessionID string) error {
	if holder, held := f.holders[roomID]; held && holder == sessionID {
		delete(f.holders, roomID)
		f.released = append(f.released, roomID)
	}
	return nil
}

func fixtureRepo(t *testing.T) (*fakeRepo, *RoomType, []Room) {
	t.Helper()
	roomType := &RoomType{
		ID:           uuid.New(),
		Code:         "DBL",
		Description:  "Double room",
		MaxOccupancy: 2,
		NightlyRate:  150,
	}
	rooms := []Room{
		{ID: uuid.New(), Number: "101", RoomTypeID: roomType.ID, RoomType: roomType},
		{ID: uuid.New(), Number: "102", RoomTypeID: roomType.ID, RoomType: roomType},
	}
	repo := &fakeRepo{
		roomTypes: map[string]*RoomType{"DBL": roomType},
		rooms:     rooms,
	}
	return repo, roomType, rooms
}

var testArrival = time.Date(2018, time.November, 11, 0, 0, 0, 0, time.UTC)

func TestRoomTypeSuitabilityAndCost(t *testing.T) {
	roomType := &RoomType{MaxOccupancy: 2, NightlyRate: 150}

	if roomType.IsSuitable(0) {
		t.Fatal("zero occupants must be unsuitable")
	}
	if !roomType.IsSuitable(2) {
		t.Fatal("occupants at the ceiling must be suitable")
	}
	if roomType.IsSuitable(3) {
		t.Fatal("occupants above the ceiling must be unsuitable")
	}
	if got := roomType.CalculateCost(testArrival, 3); got != 450 {
		t.Fatalf("expected cost 450, got %v", got)
	}
	if got := roomType.CalculateCost(testArrival, 0); got != 0 {
		t.Fatalf("expected zero cost for empty stay, got %v", got)
	}
}

func TestCreateRoomTypeDuplicate(t *testing.T) {
	repo, _, _ := fixtureRepo(t)
	service := NewService(repo, nil, nil)

	_, err := service.CreateRoomType(context.Background(), CreateRoomTypeRequest{
		Code: "dbl", Description: "Another double", MaxOccupancy: 2, NightlyRate: 120,
	})
	if !errors.Is(err, ErrRoomTypeExists) {
		t.Fatalf("expected ErrRoomTypeExists, got %v", err)
	}
}

func TestFindAvailableRoomHoldsFirstFree(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{}
	service := NewService(repo, nil, holds)

	room, err := service.FindAvailableRoom(context.Background(), "session-1", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil || room.Number != "101" {
		t.Fatalf("expected room 101, got %+v", room)
	}
	if holds.holders[rooms[0].ID.String()] != "session-1" {
		t.Fatal("expected hold placed for the session")
	}
}

func TestFindAvailableRoomSkipsHeldRooms(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{holders: map[string]string{
		rooms[0].ID.String(): "other-session",
	}}
	service := NewService(repo, nil, holds)

	room, err := service.FindAvailableRoom(context.Background(), "session-1", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil || room.Number != "102" {
		t.Fatalf("expected held room skipped, got %+v", room)
	}
}

func TestFindAvailableRoomReturnsOwnHeldRoom(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{holders: map[string]string{
		rooms[0].ID.String(): "session-1",
	}}
	service := NewService(repo, nil, holds)

	room, err := service.FindAvailableRoom(context.Background(), "session-1", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil || room.Number != "101" {
		t.Fatalf("expected the session's own held room back, got %+v", room)
	}
	if holds.holders[rooms[0].ID.String()] != "session-1" {
		t.Fatal("expected the session to keep its hold")
	}
}

func TestFindAvailableRoomWithoutSessionPlacesNoHold(t *testing.T) {
	repo, _, _ := fixtureRepo(t)
	holds := &fakeHolds{}
	service := NewService(repo, nil, holds)

	room, err := service.FindAvailableRoom(context.Background(), "", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil || room.Number != "101" {
		t.Fatalf("expected room 101 reported, got %+v", room)
	}
	if len(holds.holders) != 0 {
		t.Fatalf("expected no holds placed for a sessionless check, got %v", holds.holders)
	}

	// repeated checks must not burn through the inventory
	room, err = service.FindAvailableRoom(context.Background(), "", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("second find available: %v", err)
	}
	if room == nil || room.Number != "101" {
		t.Fatalf("expected the same room still reported free, got %+v", room)
	}
}

func TestFindAvailableRoomWithoutSessionSkipsHeldRooms(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{holders: map[string]string{
		rooms[0].ID.String(): "other-session",
	}}
	service := NewService(repo, nil, holds)

	room, err := service.FindAvailableRoom(context.Background(), "", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil || room.Number != "102" {
		t.Fatalf("expected the held room skipped, got %+v", room)
	}
	if holds.holders[rooms[1].ID.String()] != "" {
		t.Fatal("expected no hold placed on the reported room")
	}
}

func TestReleaseRoomDropsOnlyOwnHold(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{holders: map[string]string{
		rooms[0].ID.String(): "session-1",
		rooms[1].ID.String(): "other-session",
	}}
	service := NewService(repo, nil, holds)

	if err := service.ReleaseRoom(context.Background(), "session-1", rooms[0].ID); err != nil {
		t.Fatalf("release own hold: %v", err)
	}
	if _, held := holds.holders[rooms[0].ID.String()]; held {
		t.Fatal("expected the session's hold released")
	}

	if err := service.ReleaseRoom(context.Background(), "session-1", rooms[1].ID); err != nil {
		t.Fatalf("release foreign hold: %v", err)
	}
	if holds.holders[rooms[1].ID.String()] != "other-session" {
		t.Fatal("expected another session's hold untouched")
	}
}

func TestFindAvailableRoomExcludesOverlappingStays(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	repo.records = []BookingRecord{
		{RoomID: rooms[0].ID, Arrival: testArrival, Departure: testArrival.AddDate(0, 0, 3)},
		{RoomID: rooms[1].ID, Arrival: testArrival.AddDate(0, 0, -1), Departure: testArrival.AddDate(0, 0, 2)},
	}
	service := NewService(repo, nil, &fakeHolds{})

	room, err := service.FindAvailableRoom(context.Background(), "session-1", "DBL", testArrival, 3)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room != nil {
		t.Fatalf("expected no availability, got %+v", room)
	}

	// a stay that ends exactly at arrival does not overlap
	room, err = service.FindAvailableRoom(context.Background(), "session-1", "DBL", testArrival.AddDate(0, 0, 3), 2)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if room == nil {
		t.Fatal("expected back-to-back stay to be available")
	}
}

func TestFindAvailableRoomRejectsInvalidStay(t *testing.T) {
	repo, _, _ := fixtureRepo(t)
	service := NewService(repo, nil, nil)

	if _, err := service.FindAvailableRoom(context.Background(), "s", "DBL", time.Time{}, 3); !errors.Is(err, ErrInvalidStay) {
		t.Fatalf("expected ErrInvalidStay for zero arrival, got %v", err)
	}
	if _, err := service.FindAvailableRoom(context.Background(), "s", "DBL", testArrival, 0); !errors.Is(err, ErrInvalidStay) {
		t.Fatalf("expected ErrInvalidStay for zero stay, got %v", err)
	}
}

func TestBookCommitsRecordAndReleasesHold(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	holds := &fakeHolds{holders: map[string]string{
		rooms[0].ID.String(): "session-1",
	}}
	service := NewService(repo, nil, holds)

	confirmation, err := service.Book(context.Background(), BookRequest{
		SessionID:    "session-1",
		RoomID:       rooms[0].ID,
		GuestID:      uuid.New(),
		GuestName:    "Alice Smith",
		Arrival:      testArrival,
		StayLength:   3,
		Occupants:    2,
		CardVendor:   "Visa",
		CardLastFour: "1111",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if confirmation != 2018111100101 {
		t.Fatalf("expected confirmation 2018111100101, got %d", confirmation)
	}
	if repo.created == nil {
		t.Fatal("expected booking record persisted")
	}
	if repo.created.Cost != 450 {
		t.Fatalf("expected cost 450, got %v", repo.created.Cost)
	}
	if !repo.created.Departure.Equal(testArrival.AddDate(0, 0, 3)) {
		t.Fatalf("unexpected departure %v", repo.created.Departure)
	}
	if len(holds.released) != 1 || holds.released[0] != rooms[0].ID.String() {
		t.Fatalf("expected hold released, got %v", holds.released)
	}

	record, err := service.FindBookingByConfirmation(context.Background(), confirmation)
	if err != nil {
		t.Fatalf("find booking: %v", err)
	}
	if record.GuestName != "Alice Smith" || record.CardLastFour != "1111" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestBookDoubleCommitRejected(t *testing.T) {
	repo, _, rooms := fixtureRepo(t)
	service := NewService(repo, nil, nil)

	req := BookRequest{
		RoomID:     rooms[0].ID,
		GuestID:    uuid.New(),
		GuestName:  "Alice Smith",
		Arrival:    testArrival,
		StayLength: 3,
		Occupants:  2,
	}
	if _, err := service.Book(context.Background(), req); err != nil {
		t.Fatalf("first book: %v", err)
	}
	if _, err := service.Book(context.Background(), req); !errors.Is(err, ErrRoomNoLongerAvailable) {
		t.Fatalf("expected ErrRoomNoLongerAvailable, got %v", err)
	}
}

func TestConfirmationNumberDerivation(t *testing.T) {
	cases := []struct {
		arrival time.Time
		room    string
		want    int64
	}{
		{time.Date(2018, 11, 11, 0, 0, 0, 0, time.UTC), "101", 2018111100101},
		{time.Date(2019, 1, 3, 0, 0, 0, 0, time.UTC), "7", 2019010300007},
		{time.Date(2018, 12, 30, 0, 0, 0, 0, time.UTC), "A-204", 2018123000204},
	}
	for _, tc := range cases {
		if got := confirmationNumber(tc.arrival, tc.room); got != tc.want {
			t.Fatalf("confirmation for %s/%s: expected %d, got %d", tc.arrival.Format(dateLayout), tc.room, tc.want, got)
		}
	}
}
