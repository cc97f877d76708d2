package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

type PostgresChatGroupRepo struct {
	db *pgxpool.Pool
}

func NewPostgresChatGroupRepo(db *pgxpool.Pool) ports.ChatGroupRepository {
	return &PostgresChatGroupRepo{db: db}
}

// Create insère le groupe ET le membership admin dans la même transaction :
// si le second INSERT échoue, le groupe est rollback (jamais de groupe
// orphelin sans admin).
func (r *PostgresChatGroupRepo) Create(ctx context.Context, group *domain.ChatGroup, admin *domain.GroupMember) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db: begin create group: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `
		INSERT INTO chat_groups (group_id, name, description, privacy, creator_id, creation_date)
		VALUES (@group_id, @name, @description, @privacy, @creator_id, @creation_date)
	`
	args := pgx.NamedArgs{
		"group_id":      group.ID,
		"name":          group.Name,
		"description":   group.Description,
		"privacy":       group.Privacy,
		"creator_id":    group.Creator.ID,
		"creation_date": group.CreationDate,
	}
	if _, err := tx.Exec(ctx, q, args); err != nil {
		return translateUnique(err, domain.ErrGroupNameTaken)
	}

	if err := insertMember(ctx, tx, admin); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresChatGroupRepo) FindByID(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	group, err := r.scanGroup(ctx, `WHERE g.group_id = $1`, groupID)
	if err != nil {
		return nil, err
	}

	if group.Members, err = r.membersOf(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *PostgresChatGroupRepo) FindByName(ctx context.Context, name string) (*domain.ChatGroup, error) {
	return r.scanGroup(ctx, `WHERE g.name = $1`, name)
}

// FindAll : tous les groupes avec leur roster.
func (r *PostgresChatGroupRepo) FindAll(ctx context.Context) ([]*domain.ChatGroup, error) {
	rows, err := r.db.Query(ctx, groupSelect)
	if err != nil {
		return nil, fmt.Errorf("db: list groups: %w", err)
	}
	defer rows.Close()

	groups, err := collectGroups(rows)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if g.Members, err = r.membersOf(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *PostgresChatGroupRepo) Update(ctx context.Context, group *domain.ChatGroup) error {
	q := `
		UPDATE chat_groups
		SET name = @name, description = @description, privacy = @privacy
		WHERE group_id = @group_id
	`
	args := pgx.NamedArgs{
		"group_id":    group.ID,
		"name":        group.Name,
		"description": group.Description,
		"privacy":     group.Privacy,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return translateUnique(err, domain.ErrGroupNameTaken)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

// Delete : les memberships et les messages du groupe tombent par
// ON DELETE CASCADE, pas par orchestration applicative.
func (r *PostgresChatGroupRepo) Delete(ctx context.Context, groupID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_groups WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("db: delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *PostgresChatGroupRepo) AddMember(ctx context.Context, member *domain.GroupMember) error {
	return insertMember(ctx, r.db, member)
}

// FindWithMessages : le groupe avec roster + thread, expéditeurs projetés en
// résumé public (même contrat d'exposition que les chats directs).
func (r *PostgresChatGroupRepo) FindWithMessages(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	group, err := r.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.Messages, err = r.messagesOf(ctx, groupID); err != nil {
		return nil, err
	}
	return group, nil
}

// MembershipsByUser : la vue "mes groupes" — chaque membership est étendu avec
// son groupe parent et le thread de celui-ci.
func (r *PostgresChatGroupRepo) MembershipsByUser(ctx context.Context, userID string) ([]*domain.GroupMember, error) {
	q := `SELECT group_id, user_id, role, join_date FROM group_members WHERE user_id = $1`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: memberships by user: %w", err)
	}
	defer rows.Close()

	members := make([]*domain.GroupMember, 0)
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role, &m.JoinDate); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range members {
		group, err := r.scanGroup(ctx, `WHERE g.group_id = $1`, m.GroupID)
		if err != nil {
			return nil, err
		}
		if group.Messages, err = r.messagesOf(ctx, group.ID); err != nil {
			return nil, err
		}
		m.Group = group
	}

	return members, nil
}

// --- HELPERS ---

const groupSelect = `
	SELECT g.group_id, g.name, g.description, g.privacy, g.creation_date,
	       u.id, u.username, u.fullname, u.profile_image, u.user_type
	FROM chat_groups g
	INNER JOIN users u ON u.id = g.creator_id
`

func (r *PostgresChatGroupRepo) scanGroup(ctx context.Context, where string, arg any) (*domain.ChatGroup, error) {
	var g domain.ChatGroup
	err := r.db.QueryRow(ctx, groupSelect+where, arg).Scan(
		&g.ID, &g.Name, &g.Description, &g.Privacy, &g.CreationDate,
		&g.Creator.ID, &g.Creator.Username, &g.Creator.FullName, &g.Creator.ProfileImage, &g.Creator.UserType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("db: find group: %w", err)
	}
	return &g, nil
}

func collectGroups(rows pgx.Rows) ([]*domain.ChatGroup, error) {
	groups := make([]*domain.ChatGroup, 0)
	for rows.Next() {
		var g domain.ChatGroup
		err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.Privacy, &g.CreationDate,
			&g.Creator.ID, &g.Creator.Username, &g.Creator.FullName, &g.Creator.ProfileImage, &g.Creator.UserType,
		)
		if err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *PostgresChatGroupRepo) membersOf(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	q := `SELECT group_id, user_id, role, join_date FROM group_members WHERE group_id = $1`

	rows, err := r.db.Query(ctx, q, groupID)
	if err != nil {
		return nil, fmt.Errorf("db: group members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.GroupMember, 0)
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role, &m.JoinDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PostgresChatGroupRepo) messagesOf(ctx context.Context, groupID string) ([]domain.Message, error) {
	q := `
		SELECT m.id, m.content, m.send_date,
		       u.id, u.username, u.fullname, u.profile_image, u.user_type
		FROM messages m
		INNER JOIN users u ON u.id = m.sender_id
		WHERE m.group_id = $1
		ORDER BY m.send_date ASC
	`
	rows, err := r.db.Query(ctx, q, groupID)
	if err != nil {
		return nil, fmt.Errorf("db: group messages: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

// insertMember fonctionne sur le pool ou une transaction.
func insertMember(ctx context.Context, db execer, member *domain.GroupMember) error {
	q := `
		INSERT INTO group_members (group_id, user_id, role, join_date)
		VALUES (@group_id, @user_id, @role, @join_date)
	`
	args := pgx.NamedArgs{
		"group_id":  member.GroupID,
		"user_id":   member.UserID,
		"role":      string(member.Role),
		"join_date": member.JoinDate,
	}
	if _, err := db.Exec(ctx, q, args); err != nil {
		return translateUnique(err, domain.ErrAlreadyMember)
	}
	return nil
}
