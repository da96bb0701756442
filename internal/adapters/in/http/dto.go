package http

import (
	"time"

	"ewaste/internal/core/application/orchestrator"
	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/domain/model/pickup"
	"ewaste/internal/core/domain/model/worker"
	"ewaste/internal/pkg/errs"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (a Address) toDomain() kernel.Address {
	return kernel.NewAddress(a.Line, a.City, a.State, a.Pincode)
}

func addressFrom(a kernel.Address) Address {
	return Address{Line: a.Line, City: a.City, State: a.State, Pincode: a.Pincode}
}

type NewPickup struct {
	RequesterID  string   `json:"requester_id"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Address      Address  `json:"address"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Date         string   `json:"date"`
	TimeSlot     string   `json:"time_slot"`
	WasteType    string   `json:"waste_type"`
	Status       string   `json:"status,omitempty"`
}

func (p NewPickup) toDetails() (pickup.Details, error) {
	requester, err := kernel.UUIDFromString(p.RequesterID)
	if err != nil {
		return pickup.Details{}, err
	}
	location, err := geoPoint(p.Latitude, p.Longitude)
	if err != nil {
		return pickup.Details{}, err
	}

	return pickup.Details{
		RequesterID: requester,
		Contact:     pickup.Contact{Name: p.ContactName, Phone: p.ContactPhone, Email: p.ContactEmail},
		Address:     p.Address.toDomain(),
		Location:    location,
		Date:        p.Date,
		TimeSlot:    p.TimeSlot,
		WasteType:   p.WasteType,
		Status:      pickup.Status(p.Status),
	}, nil
}

type Pickup struct {
	ID               string   `json:"id"`
	RequesterID      string   `json:"requester_id"`
	ContactName      string   `json:"contact_name,omitempty"`
	ContactPhone     string   `json:"contact_phone,omitempty"`
	Address          Address  `json:"address"`
	Date             string   `json:"date"`
	TimeSlot         string   `json:"time_slot,omitempty"`
	WasteType        string   `json:"waste_type,omitempty"`
	Status           string   `json:"status"`
	TrackingStatus   string   `json:"tracking_status,omitempty"`
	AssignedWorkerID *string  `json:"assigned_worker_id"`
	WeightKg         *float64 `json:"weight_kg"`
	Brand            string   `json:"brand,omitempty"`
	ItemDetails      string   `json:"item_details,omitempty"`
	EstimatedValue   *float64 `json:"estimated_value,omitempty"`
	RescheduleReason string   `json:"reschedule_reason,omitempty"`
}

func pickupFrom(r *pickup.Request) Pickup {
	contact := r.Contact()
	return Pickup{
		ID:               r.ID().String(),
		RequesterID:      r.RequesterID().String(),
		ContactName:      contact.Name,
		ContactPhone:     contact.Phone,
		Address:          addressFrom(r.Address()),
		Date:             r.Date(),
		TimeSlot:         r.TimeSlot(),
		WasteType:        r.WasteType(),
		Status:           r.Status().String(),
		TrackingStatus:   r.TrackingStatus().String(),
		AssignedWorkerID: idString(r.AssignedWorker()),
		WeightKg:         r.WeightKg(),
		Brand:            r.Brand(),
		ItemDetails:      r.ItemDetails(),
		EstimatedValue:   r.EstimatedValue(),
		RescheduleReason: r.RescheduleReason(),
	}
}

func pickupFromView(v queries.PickupView) Pickup {
	return Pickup{
		ID:               v.ID.String(),
		RequesterID:      v.RequesterID.String(),
		ContactName:      v.ContactName,
		ContactPhone:     v.ContactPhone,
		Address:          addressFrom(v.Address),
		Date:             v.Date,
		TimeSlot:         v.TimeSlot,
		WasteType:        v.WasteType,
		Status:           v.Status.String(),
		TrackingStatus:   v.TrackingStatus.String(),
		AssignedWorkerID: idString(v.AssignedWorkerID),
		WeightKg:         v.WeightKg,
		RescheduleReason: v.RescheduleReason,
	}
}

type WorkerRef struct {
	WorkerID string `json:"worker_id"`
}

type StatusReport struct {
	WorkerID       string   `json:"worker_id"`
	Status         string   `json:"status"`
	CollectedKg    *float64 `json:"collected_kg,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Brand          *string  `json:"brand,omitempty"`
	ItemDetails    *string  `json:"item_details,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
}

type RescheduleRequest struct {
	WorkerID string `json:"worker_id"`
	NewDate  string `json:"new_date"`
	Reason   string `json:"reason"`
}

type AutoAssignment struct {
	Assigned   bool     `json:"assigned"`
	WorkerID   *string  `json:"worker_id"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Fallback   bool     `json:"capacity_fallback"`
	Trace      []string `json:"trace"`
	Pickup     *Pickup  `json:"pickup,omitempty"`
}

func autoAssignmentFrom(res commands.AutoAssignResult) AutoAssignment {
	out := AutoAssignment{
		Assigned: res.Assigned(),
		Fallback: res.Plan.Fallback,
		Trace:    make([]string, 0, len(res.Plan.Trace)),
	}
	for _, e := range res.Plan.Trace {
		out.Trace = append(out.Trace, e.String())
	}
	if res.Assigned() {
		id := res.Plan.Worker.ID().String()
		d := res.Plan.DistanceKm
		out.WorkerID, out.DistanceKm = &id, &d
	}
	if res.Request != nil {
		p := pickupFrom(res.Request)
		out.Pickup = &p
	}
	return out
}

type BulkAssignment struct {
	TotalUnassigned int `json:"total_unassigned"`
	AssignedCount   int `json:"assigned_count"`
}

func bulkAssignmentFrom(r orchestrator.BulkResult) BulkAssignment {
	return BulkAssignment{TotalUnassigned: r.Total, AssignedCount: r.Assigned}
}

type NewWorker struct {
	Username  string   `json:"username"`
	FullName  string   `json:"full_name"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Address   Address  `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Available *bool    `json:"available,omitempty"`
}

type Worker struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	FullName   string   `json:"full_name,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    Address  `json:"address"`
	Available  bool     `json:"available"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func workerFrom(w *worker.Worker) Worker {
	p := w.Profile()
	return Worker{
		ID:        w.ID().String(),
		Username:  p.Username,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   addressFrom(w.Address()),
		Available: w.IsAvailable(),
	}
}

func nearbyWorkerFrom(r queries.GetNearbyWorkersQueryResponse) Worker {
	d := r.DistanceKm
	return Worker{
		ID:         r.ID.String(),
		Username:   r.Username,
		FullName:   r.FullName,
		Phone:      r.Phone,
		Address:    addressFrom(r.Address),
		Available:  r.Available,
		DistanceKm: &d,
	}
}

type WorkerLoad struct {
	WorkerID        string `json:"worker_id"`
	AssignmentCount int    `json:"assignment_count"`
	MaxAssignments  int    `json:"max_assignments"`
	IsAvailable     bool   `json:"is_available"`
	OnDuty          bool   `json:"on_duty"`
}

func workerLoadFrom(r queries.GetWorkerAvailabilityQueryResponse) WorkerLoad {
	return WorkerLoad{
		WorkerID:        r.WorkerID.String(),
		AssignmentCount: r.Assignments,
		MaxAssignments:  r.MaxAssignments,
		IsAvailable:     r.Available,
		OnDuty:          r.OnDuty,
	}
}

type Log struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	WorkerID    string    `json:"worker_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
	CollectedKg *float64  `json:"collected_kg,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

func logFrom(v queries.LogView) Log {
	return Log{
		ID:          v.ID.String(),
		RequestID:   v.RequestID.String(),
		WorkerID:    v.WorkerID.String(),
		OldStatus:   v.OldStatus.String(),
		NewStatus:   v.NewStatus.String(),
		Timestamp:   v.Timestamp,
		CollectedKg: v.CollectedKg,
		Notes:       v.Notes,
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// geoPoint accepts both coordinates or neither.
func geoPoint(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, errs.NewValueIsRequiredError("latitude and longitude")
	}
	p, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
