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

type PostgresChatRepo struct {
	db *pgxpool.Pool
}

func NewPostgresChatRepo(db *pgxpool.Pool) ports.ChatRepository {
	return &PostgresChatRepo{db: db}
}

// Save insère le chat et ses lignes de jonction dans une transaction.
// L'index UNIQUE sur chats.key tranche les créations concurrentes du même
// ensemble de participants : sa violation sort en ErrChatAlreadyExists.
func (r *PostgresChatRepo) Save(ctx context.Context, chat *domain.Chat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db: begin save chat: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `INSERT INTO chats (id, key) VALUES (@id, @key)`
	args := pgx.NamedArgs{"id": chat.ID, "key": chat.Key}
	if _, err := tx.Exec(ctx, q, args); err != nil {
		return translateUnique(err, domain.ErrChatAlreadyExists)
	}

	for _, p := range chat.Participants {
		qj := `INSERT INTO user_chats (chat_id, user_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, qj, chat.ID, p.ID); err != nil {
			return fmt.Errorf("db: save chat participant: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// FindByKey : métadonnées seules (id + key + participants), sans le thread.
func (r *PostgresChatRepo) FindByKey(ctx context.Context, key string) (*domain.Chat, error) {
	q := `SELECT id, key FROM chats WHERE key = $1`

	var chat domain.Chat
	err := r.db.QueryRow(ctx, q, key).Scan(&chat.ID, &chat.Key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("db: find chat by key: %w", err)
	}

	chat.Participants, err = r.participantsOf(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindByID : le chat avec son thread complet, messages ordonnés par date
// d'envoi, expéditeurs projetés en résumé public.
func (r *PostgresChatRepo) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	q := `SELECT id, key FROM chats WHERE id = $1`

	var chat domain.Chat
	err := r.db.QueryRow(ctx, q, chatID).Scan(&chat.ID, &chat.Key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("db: find chat by id: %w", err)
	}

	if chat.Participants, err = r.participantsOf(ctx, chat.ID); err != nil {
		return nil, err
	}
	if chat.Messages, err = r.messagesOf(ctx, chat.ID); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListByParticipant : toutes les conversations contenant userID, participants
// et messages chargés (la vue "mes chats" et la brique du filtre de découverte).
func (r *PostgresChatRepo) ListByParticipant(ctx context.Context, userID string) ([]*domain.Chat, error) {
	q := `
		SELECT c.id, c.key
		FROM chats c
		WHERE c.id IN (SELECT chat_id FROM user_chats WHERE user_id = $1)
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: list chats by participant: %w", err)
	}
	defer rows.Close()

	chats := make([]*domain.Chat, 0)
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.Key); err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Hydratation après itération : pgx n'autorise qu'une requête active par
	// connexion du pool.
	for _, chat := range chats {
		if chat.Participants, err = r.participantsOf(ctx, chat.ID); err != nil {
			return nil, err
		}
		if chat.Messages, err = r.messagesOf(ctx, chat.ID); err != nil {
			return nil, err
		}
	}

	return chats, nil
}

// --- HELPERS ---

func (r *PostgresChatRepo) participantsOf(ctx context.Context, chatID string) ([]domain.UserSummary, error) {
	q := `
		SELECT u.id, u.username, u.fullname, u.profile_image, u.user_type
		FROM user_chats uc
		INNER JOIN users u ON u.id = uc.user_id
		WHERE uc.chat_id = $1
	`
	rows, err := r.db.Query(ctx, q, chatID)
	if err != nil {
		return nil, fmt.Errorf("db: chat participants: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

func (r *PostgresChatRepo) messagesOf(ctx context.Context, chatID string) ([]domain.Message, error) {
	q := `
		SELECT m.id, m.content, m.send_date,
		       u.id, u.username, u.fullname, u.profile_image, u.user_type
		FROM messages m
		INNER JOIN users u ON u.id = m.sender_id
		WHERE m.chat_id = $1
		ORDER BY m.send_date ASC
	`
	rows, err := r.db.Query(ctx, q, chatID)
	if err != nil {
		return nil, fmt.Errorf("db: chat messages: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		err := rows.Scan(
			&m.ID, &m.Content, &m.SentAt,
			&m.Sender.ID, &m.Sender.Username, &m.Sender.FullName, &m.Sender.ProfileImage, &m.Sender.UserType,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
