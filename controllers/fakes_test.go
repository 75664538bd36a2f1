package controllers

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/repositories"
)

// In-memory repository fakes mirroring the Mongo implementations'
// contracts, including the index-backed duplicate errors.

type fakeOTPRepo struct {
	mu     sync.Mutex
	otps   []*models.OTP
	failed error
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (f *fakeOTPRepo) DeleteAllForMobile(_ context.Context, mobile string) error {
	if f.failed != nil {
		return f.failed
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, o := range f.otps {
		if o.Mobile != mobile {
			kept = append(kept, o)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeOTPRepo) Create(_ context.Context, otp *models.OTP) error {
	if f.failed != nil {
		return f.failed
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp.ID.IsZero() {
		otp.ID = primitive.NewObjectID()
	}
	clone := *otp
	f.otps = append(f.otps, &clone)
	return nil
}

func (f *fakeOTPRepo) FindLatest(_ context.Context, mobile, code string) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.OTP
	for _, o := range f.otps {
		if o.Mobile == mobile && o.OTP == code {
			if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
				latest = o
			}
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

func (f *fakeOTPRepo) MarkVerified(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.otps {
		if o.ID == id {
			o.Verified = true
		}
	}
	return nil
}

func (f *fakeOTPRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, o := range f.otps {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeOTPRepo) FindVerified(_ context.Context, mobile string) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.otps {
		if o.Mobile == mobile && o.Verified {
			clone := *o
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOTPRepo) all(mobile string) []*models.OTP {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.OTP
	for _, o := range f.otps {
		if o.Mobile == mobile {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	f.users = append(f.users, &clone)
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.ApplicationID == app.ApplicationID {
			return repositories.ErrDuplicate
		}
		// partial unique index: one Approved record per Aadhaar
		if app.Status == models.StatusApproved && a.Status == models.StatusApproved && a.Aadhaar == app.Aadhaar {
			return repositories.ErrDuplicate
		}
	}
	app.ID = primitive.NewObjectID()
	clone := *app
	f.apps = append(f.apps, &clone)
	return nil
}

func (f *fakeApplicationRepo) HasApprovedAadhaar(_ context.Context, aadhaar string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.Aadhaar == aadhaar && a.Status == models.StatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) FindByIDForUser(_ context.Context, applicationID string, userID primitive.ObjectID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.ApplicationID == applicationID && a.UserID == userID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeApplicationRepo) SearchApprovedByVoterID(_ context.Context, voterID string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Application
	for _, a := range f.apps {
		if a.Status == models.StatusApproved && a.VoterID == voterID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) SearchApprovedByName(_ context.Context, name string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Application
	for _, a := range f.apps {
		if a.Status == models.StatusApproved && strings.Contains(strings.ToLower(a.FullName), strings.ToLower(name)) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeAadhaarRepo struct {
	records map[string]*models.AadhaarRecord
}

func newFakeAadhaarRepo() *fakeAadhaarRepo {
	return &fakeAadhaarRepo{records: map[string]*models.AadhaarRecord{}}
}

func (f *fakeAadhaarRepo) FindByAadhaar(_ context.Context, aadhaar string) (*models.AadhaarRecord, error) {
	if r, ok := f.records[aadhaar]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}
