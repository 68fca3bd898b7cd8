package service

import (
	"context"

	"github.com/sportmeet/api/entity"
)

type ContactService struct {
	contactStore ContactStore
}

func NewContactService(contactStore ContactStore) *ContactService {
	return &ContactService{
		contactStore: contactStore,
	}
}

func (s *ContactService) Create(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	contact.Email = normalizeEmail(contact.Email)
	return s.contactStore.InsertOne(ctx, contact)
}

func (s *ContactService) List(ctx context.Context) ([]*entity.Contact, error) {
	return s.contactStore.FindAll(ctx)
}
