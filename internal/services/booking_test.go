package services

import (
	"testing"

	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeBookingStore struct {
	bookings []models.Booking
}

func (f *fakeBookingStore) CountActiveAtSlot(date, timeSlot string) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.BookingDate == date && b.BookingTime == timeSlot && b.Status != models.BookingStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingStore) Create(booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingStore) GetByID(id uuid.UUID) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingStore) Update(booking *models.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == booking.ID {
			f.bookings[i] = *booking
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBookingStore) Delete(id uuid.UUID) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCatalog struct {
	services map[uuid.UUID]models.Service
}

func (f *fakeCatalog) GetByIDs(ids []uuid.UUID) ([]models.Service, error) {
	var result []models.Service
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			result = append(result, svc)
		}
	}
	return result, nil
}

// reversedCatalog resolves the same services but returns the rows backwards,
// the way an IN query is free to.
type reversedCatalog struct {
	inner *fakeCatalog
}

func (r *reversedCatalog) GetByIDs(ids []uuid.UUID) ([]models.Service, error) {
	result, err := r.inner.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func price(v float64) *float64 { return &v }

func newTestCatalog() (*fakeCatalog, uuid.UUID, uuid.UUID) {
	interior := uuid.New()
	exterior := uuid.New()
	catalog := &fakeCatalog{services: map[uuid.UUID]models.Service{
		interior: {BaseModel: models.BaseModel{ID: interior}, Name: "Interior Detailing", DurationMinutes: 120, Price: price(150)},
		exterior: {BaseModel: models.BaseModel{ID: exterior}, Name: "Exterior Detailing", DurationMinutes: 90, Price: price(120)},
	}}
	return catalog, interior, exterior
}

func validRequest(serviceIDs ...string) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		CustomerName:  "Alex Chen",
		CustomerEmail: "alex@example.com",
		CustomerPhone: "5551234567",
		ServiceIDs:    serviceIDs,
		BookingDate:   "2025-01-06",
		BookingTime:   "10:00",
	}
}

func TestCreateComputesTotals(t *testing.T) {
	catalog, interior, exterior := newTestCatalog()
	svc := NewBookingService(&fakeBookingStore{}, catalog)

	booking, err := svc.Create(validRequest(interior.String(), exterior.String()))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.TotalDuration != 210 {
		t.Errorf("total duration = %d, want 210", booking.TotalDuration)
	}
	if booking.TotalPrice != 270 {
		t.Errorf("total price = %v, want 270", booking.TotalPrice)
	}
	if booking.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status = %q, want pending", booking.PaymentStatus)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", booking.Status)
	}
	if booking.PaymentMethod != "cash" {
		t.Errorf("payment method = %q, want cash default", booking.PaymentMethod)
	}
}

func TestCreateKeepsServiceIDsInRequestOrder(t *testing.T) {
	catalog, interior, exterior := newTestCatalog()
	svc := NewBookingService(&fakeBookingStore{}, &reversedCatalog{inner: catalog})

	booking, err := svc.Create(validRequest(interior.String(), exterior.String()))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := models.UUIDSlice{interior, exterior}
	if len(booking.ServiceIDs) != len(want) {
		t.Fatalf("service ids = %v, want %v", booking.ServiceIDs, want)
	}
	for i := range want {
		if booking.ServiceIDs[i] != want[i] {
			t.Errorf("service id[%d] = %v, want %v", i, booking.ServiceIDs[i], want[i])
		}
	}
}

func TestCreateNilPriceCountsAsZero(t *testing.T) {
	id := uuid.New()
	catalog := &fakeCatalog{services: map[uuid.UUID]models.Service{
		id: {BaseModel: models.BaseModel{ID: id}, Name: "Consultation", DurationMinutes: 30, Price: nil},
	}}
	svc := NewBookingService(&fakeBookingStore{}, catalog)

	booking, err := svc.Create(validRequest(id.String()))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.TotalPrice != 0 {
		t.Errorf("total price = %v, want 0 for nil price", booking.TotalPrice)
	}
}

func TestCreateRejectsUnknownServices(t *testing.T) {
	catalog, _, _ := newTestCatalog()
	store := &fakeBookingStore{}
	svc := NewBookingService(store, catalog)

	cases := [][]string{
		{uuid.New().String()},          // unknown id
		{"not-a-uuid"},                 // malformed id
		{},                             // empty selection
		{uuid.New().String(), "bogus"}, // mixed garbage
	}
	for _, ids := range cases {
		_, err := svc.Create(validRequest(ids...))
		if err != ErrInvalidSelection {
			t.Errorf("Create(%v) error = %v, want ErrInvalidSelection", ids, err)
		}
	}
	if len(store.bookings) != 0 {
		t.Errorf("no booking should be persisted, got %d", len(store.bookings))
	}
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	catalog, interior, _ := newTestCatalog()
	store := &fakeBookingStore{}
	svc := NewBookingService(store, catalog)

	if _, err := svc.Create(validRequest(interior.String())); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	// Second submission for the same (date, time): the write-time check loses
	_, err := svc.Create(validRequest(interior.String()))
	if err != ErrSlotConflict {
		t.Fatalf("second Create error = %v, want ErrSlotConflict", err)
	}
	if len(store.bookings) != 1 {
		t.Errorf("bookings persisted = %d, want exactly 1", len(store.bookings))
	}
}

func TestCreateAllowsSlotAfterCancellation(t *testing.T) {
	catalog, interior, _ := newTestCatalog()
	store := &fakeBookingStore{}
	svc := NewBookingService(store, catalog)

	first, err := svc.Create(validRequest(interior.String()))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	cancelled := models.BookingStatusCancelled
	if _, err := svc.UpdateStatus(first.ID, models.UpdateBookingRequest{Status: &cancelled}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if _, err := svc.Create(validRequest(interior.String())); err != nil {
		t.Errorf("Create after cancellation returned error: %v", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	catalog, _, _ := newTestCatalog()
	svc := NewBookingService(&fakeBookingStore{}, catalog)

	status := models.BookingStatusCompleted
	if _, err := svc.UpdateStatus(uuid.New(), models.UpdateBookingRequest{Status: &status}); err != gorm.ErrRecordNotFound {
		t.Errorf("UpdateStatus error = %v, want gorm.ErrRecordNotFound", err)
	}
}
