package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vitrine/storefront/internal/core/domain"
)

func TestMirrorDoc_StoresPayloadWithoutTimestamps(t *testing.T) {
	now := domain.NewTimestamp(time.Now())
	entry := &domain.MirrorEntry{
		ID:        "e-1",
		AccountID: 9,
		Username:  "alice",
		Payload: domain.ExternalUserInput{
			Email:     "a@x.com",
			FullName:  "alice",
			Role:      domain.ExternalRoleUser,
			Provider:  domain.ExternalProviderEmail,
			CreatedAt: &now,
		},
		Attempts:  1,
		LastError: "timeout",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := bson.Marshal(toDoc(entry))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["_id"] != "e-1" || m["resolved"] != false {
		t.Fatalf("unexpected document: %v", m)
	}
	payload, ok := m["payload"].(bson.M)
	if !ok {
		t.Fatalf("expected embedded payload, got %T", m["payload"])
	}
	if payload["email"] != "a@x.com" || payload["role"] != "user" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, found := payload["created_at"]; found {
		t.Fatalf("payload timestamps should not be stored: %v", payload)
	}

	var back mirrorDoc
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := back.entry(); got.AccountID != 9 || got.LastError != "timeout" || !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Fatalf("unexpected entry: %+v", got)
	}
}
