package service

import (
	"context"
	"testing"

	"equiptrack-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEquipmentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates equipment and stores the QR label", func(t *testing.T) {
		store, m := newMockRepos()
		blobs := new(MockBlobStorage)
		svc := NewEquipmentService(store, blobs)

		m.equipment.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Equipment).ID = 3
			}).
			Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
		blobs.On("Save", ctx, "qr_codes/qr_SN-001.png", mock.Anything).Return(nil)
		m.equipment.On("SetQRCodePath", ctx, int32(3), "qr_codes/qr_SN-001.png").Return(nil)

		eq := &domain.Equipment{Type: domain.EquipmentTypeTablet, SerialNumber: " SN-001 "}
		warning, err := svc.Create(ctx, staffActor(), eq)
		assert.NoError(t, err)
		assert.Empty(t, warning)
		assert.Equal(t, "SN-001", eq.SerialNumber)
		assert.Equal(t, domain.EquipmentStatusAvailable, eq.Status)
		assert.Equal(t, domain.ConditionGood, eq.Condition)
		assert.Equal(t, "qr_codes/qr_SN-001.png", eq.QRCodePath)
		blobs.AssertExpectations(t)
	})

	t.Run("QR storage failure yields a warning, not an error", func(t *testing.T) {
		store, m := newMockRepos()
		blobs := new(MockBlobStorage)
		svc := NewEquipmentService(store, blobs)

		m.equipment.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
		blobs.On("Save", ctx, mock.Anything, mock.Anything).Return(assert.AnError)

		eq := &domain.Equipment{Type: domain.EquipmentTypeCharger, SerialNumber: "SN-002"}
		warning, err := svc.Create(ctx, staffActor(), eq)
		assert.NoError(t, err)
		assert.NotEmpty(t, warning)
		assert.Empty(t, eq.QRCodePath)
	})

	t.Run("duplicate serial surfaces from the repository", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewEquipmentService(store, new(MockBlobStorage))

		m.equipment.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).
			Return(domain.ErrDuplicateSerial)

		_, err := svc.Create(ctx, staffActor(), &domain.Equipment{Type: domain.EquipmentTypeTablet, SerialNumber: "SN-001"})
		assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
	})

	t.Run("validation", func(t *testing.T) {
		store, _ := newMockRepos()
		svc := NewEquipmentService(store, new(MockBlobStorage))

		_, err := svc.Create(ctx, staffActor(), &domain.Equipment{Type: domain.EquipmentTypeTablet})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Create(ctx, staffActor(), &domain.Equipment{Type: "DRONE", SerialNumber: "SN-003"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Create(ctx, staffActor(), &domain.Equipment{Type: domain.EquipmentTypeTablet, SerialNumber: "SN-003", Condition: "MINT"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestEquipmentRetire(t *testing.T) {
	ctx := context.Background()

	store, m := newMockRepos()
	svc := NewEquipmentService(store, new(MockBlobStorage))

	m.equipment.On("GetByIDForUpdate", ctx, int32(3)).
		Return(&domain.Equipment{ID: 3, SerialNumber: "SN-001", Status: domain.EquipmentStatusMaintenance}, nil)
	m.equipment.On("SetStatus", ctx, int32(3), domain.EquipmentStatusRetired).Return(nil)
	m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

	eq, err := svc.Retire(ctx, staffActor(), 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusRetired, eq.Status)
}

func TestEquipmentUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists imei and condition", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewEquipmentService(store, new(MockBlobStorage))

		var persisted *domain.Equipment
		m.equipment.On("GetByIDForUpdate", ctx, int32(3)).
			Return(&domain.Equipment{ID: 3, Status: domain.EquipmentStatusAssigned, Condition: domain.ConditionGood}, nil)
		m.equipment.On("Update", ctx, mock.AnythingOfType("*domain.Equipment")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.Equipment)
			}).
			Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		imei := "356938035643809"
		eq, err := svc.Update(ctx, staffActor(), 3, &imei, domain.ConditionDamaged)
		assert.NoError(t, err)
		assert.Equal(t, &imei, eq.IMEI)
		assert.Equal(t, domain.ConditionDamaged, eq.Condition)
		// Status is untouched by an update.
		assert.Equal(t, domain.EquipmentStatusAssigned, eq.Status)

		// The write that hits storage carries the new imei, not just condition.
		assert.NotNil(t, persisted)
		assert.NotNil(t, persisted.IMEI)
		assert.Equal(t, imei, *persisted.IMEI)
		assert.Equal(t, domain.ConditionDamaged, persisted.Condition)
	})

	t.Run("imei-only update keeps condition", func(t *testing.T) {
		store, m := newMockRepos()
		svc := NewEquipmentService(store, new(MockBlobStorage))

		m.equipment.On("GetByIDForUpdate", ctx, int32(3)).
			Return(&domain.Equipment{ID: 3, Status: domain.EquipmentStatusAvailable, Condition: domain.ConditionGood}, nil)
		m.equipment.On("Update", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil)
		m.audit.On("Append", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

		imei := "356938035643810"
		eq, err := svc.Update(ctx, staffActor(), 3, &imei, "")
		assert.NoError(t, err)
		assert.Equal(t, &imei, eq.IMEI)
		assert.Equal(t, domain.ConditionGood, eq.Condition)
	})
}
