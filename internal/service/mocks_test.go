package service

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCartSlotRepository struct {
	mock.Mock
}

func (m *MockCartSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCartSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCartSlotRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	args := m.Called(ctx, to, subject, bodyHTML, bodyText)
	return args.Error(0)
}

type stubLinks struct{}

func (stubLinks) Build(text string) string {
	return "https://wa.me/5491159324610?text=" + text
}

func testProduct(id string, price int64) entity.Product {
	return entity.Product{
		ID:       entity.ProductID(id),
		Name:     "Camiseta " + id,
		Price:    decimal.NewFromInt(price),
		Category: "Camisetas",
		Club:     "Boca",
		Sizes:    []string{"S", "M", "L"},
		Images:   []string{"https://img.example.com/" + id + ".jpg"},
	}
}
