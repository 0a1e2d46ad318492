package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medisys/hospital-api/internal/core/domain"
	"github.com/medisys/hospital-api/internal/core/ports"
)

const prescriptionsCollection = "prescriptions"

// PrescriptionRepository implements ports.PrescriptionRepository using MongoDB.
type PrescriptionRepository struct {
	coll *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) *PrescriptionRepository {
	return &PrescriptionRepository{coll: db.Collection(prescriptionsCollection)}
}

type medicineDoc struct {
	Name         string `bson:"name"`
	Dosage       string `bson:"dosage"`
	Frequency    string `bson:"frequency"`
	Duration     string `bson:"duration,omitempty"`
	Quantity     string `bson:"quantity,omitempty"`
	Instructions string `bson:"instructions,omitempty"`
}

type prescriptionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AppointmentID primitive.ObjectID `bson:"appointment_id"`
	DoctorID      primitive.ObjectID `bson:"doctor_id"`
	PatientID     primitive.ObjectID `bson:"patient_id"`
	Medicines     []medicineDoc      `bson:"medicines"`
	Diagnosis     string             `bson:"diagnosis,omitempty"`
	Instructions  string             `bson:"instructions,omitempty"`
	FollowUpDate  *time.Time         `bson:"follow_up_date,omitempty"`
	IssuedDate    time.Time          `bson:"issued_date"`
	Refills       int                `bson:"refills"`
	IsRefillable  bool               `bson:"is_refillable"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func toPrescriptionDoc(p *domain.Prescription) (*prescriptionDoc, error) {
	apptOID, err := primitive.ObjectIDFromHex(p.AppointmentID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	doctorOID, err := primitive.ObjectIDFromHex(p.DoctorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	patientOID, err := primitive.ObjectIDFromHex(p.PatientID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	meds := make([]medicineDoc, len(p.Medicines))
	for i, m := range p.Medicines {
		meds[i] = medicineDoc(m)
	}
	return &prescriptionDoc{
		AppointmentID: apptOID,
		DoctorID:      doctorOID,
		PatientID:     patientOID,
		Medicines:     meds,
		Diagnosis:     p.Diagnosis,
		Instructions:  p.Instructions,
		FollowUpDate:  p.FollowUpDate,
		IssuedDate:    p.IssuedDate,
		Refills:       p.Refills,
		IsRefillable:  p.IsRefillable,
		CreatedAt:     p.CreatedAt,
	}, nil
}

func (d *prescriptionDoc) toDomain() *domain.Prescription {
	meds := make([]domain.Medicine, len(d.Medicines))
	for i, m := range d.Medicines {
		meds[i] = domain.Medicine(m)
	}
	return &domain.Prescription{
		ID:            d.ID.Hex(),
		AppointmentID: d.AppointmentID.Hex(),
		DoctorID:      d.DoctorID.Hex(),
		PatientID:     d.PatientID.Hex(),
		Medicines:     meds,
		Diagnosis:     d.Diagnosis,
		Instructions:  d.Instructions,
		FollowUpDate:  d.FollowUpDate,
		IssuedDate:    d.IssuedDate.UTC(),
		Refills:       d.Refills,
		IsRefillable:  d.IsRefillable,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	doc, err := toPrescriptionDoc(p)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert prescription: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PrescriptionRepository) List(ctx context.Context, filter ports.ListPrescriptionsFilter) ([]*domain.Prescription, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return nil, 0, domain.ErrUserNotFound
		}
		query["patient_id"] = oid
	}
	if filter.DoctorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.DoctorID)
		if err != nil {
			return nil, 0, domain.ErrUserNotFound
		}
		query["doctor_id"] = oid
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count prescriptions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list prescriptions: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Prescription
	for cur.Next(ctx) {
		var doc prescriptionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode prescription: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prescriptions: %w", err)
	}
	return items, total, nil
}

// EnsureIndexes creates the prescription read-path indexes.
func (r *PrescriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "issued_date", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "issued_date", Value: -1}}},
		{Keys: bson.D{{Key: "appointment_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
