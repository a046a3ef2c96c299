package catalogstore

import (
	"context"

	"github.com/supabase-community/postgrest-go"

	"github.com/vitrine/storefront/internal/core/domain"
)

const (
	userTable   = domain.TableUsers
	userColumns = "id,email,full_name,avatar_url,bio,role,provider,email_confirmed,created_at,updated_at,last_sign_in"
)

func (s *Store) Users(ctx context.Context) []domain.ExternalUser {
	return list[domain.ExternalUser](ctx, s, userTable, "list", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select(userColumns, "", false)
	})
}

func (s *Store) User(ctx context.Context, id string) *domain.ExternalUser {
	return first[domain.ExternalUser](ctx, s, userTable, "get", func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Select("*", "", false).Eq("id", id)
	})
}

func (s *Store) CreateUser(ctx context.Context, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser] {
	msg := messages{ok: "User created successfully", fail: "Error creating user"}
	return write[domain.ExternalUser](ctx, s, userTable, "create", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Insert(in, false, "", "representation", "")
	})
}

func (s *Store) UpdateUser(ctx context.Context, id string, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser] {
	msg := messages{ok: "User updated successfully", fail: "Error updating user"}
	return write[domain.ExternalUser](ctx, s, userTable, "update", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Update(in, "representation", "").Eq("id", id)
	})
}

func (s *Store) DeleteUser(ctx context.Context, id string) domain.WriteResult[domain.ExternalUser] {
	msg := messages{ok: "User deleted successfully", fail: "Error deleting user"}
	return write[domain.ExternalUser](ctx, s, userTable, "delete", msg, func(q *postgrest.QueryBuilder) *postgrest.FilterBuilder {
		return q.Delete("representation", "").Eq("id", id)
	})
}
