package domain

// --- TAXONOMIE DES ERREURS ---
// Chaque erreur porte un Kind stable (utilisé par le transport pour le mapping
// HTTP) et un Message affichable. Le matching se fait via errors.Is sur le Kind.

type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindSelfReference ErrorKind = "self_reference"
	KindValidation    ErrorKind = "validation"
)

// Error est l'erreur du domaine. Elle est immuable : on déclare des valeurs
// sentinelles ci-dessous et on les compare avec errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is permet à errors.Is(err, ErrNotFound) de matcher n'importe quelle erreur
// du même Kind (les sentinelles génériques servent de "classe" d'erreur).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// --- SENTINELLES GÉNÉRIQUES (une par Kind) ---

var (
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrConflict      = &Error{Kind: KindConflict, Message: "resource already exists"}
	ErrSelfReference = &Error{Kind: KindSelfReference, Message: "self reference not allowed"}
	ErrValidation    = &Error{Kind: KindValidation, Message: "invalid input"}
)

// --- SENTINELLES SPÉCIFIQUES ---

var (
	ErrUserNotFound      = &Error{Kind: KindNotFound, Message: "one or both users do not exist"}
	ErrChatNotFound      = &Error{Kind: KindNotFound, Message: "no chat found between these users"}
	ErrGroupNotFound     = &Error{Kind: KindNotFound, Message: "group chat not found"}
	ErrFollowNotFound    = &Error{Kind: KindNotFound, Message: "you are not following this user"}
	ErrSelfFollow        = &Error{Kind: KindSelfReference, Message: "you cannot follow yourself"}
	ErrAlreadyFollowing  = &Error{Kind: KindConflict, Message: "you are already following this user"}
	ErrChatAlreadyExists = &Error{Kind: KindConflict, Message: "a chat between these users already exists"}
	ErrGroupNameTaken    = &Error{Kind: KindConflict, Message: "a group chat with this name already exists"}
	ErrAlreadyMember     = &Error{Kind: KindConflict, Message: "user is already a member of this group"}
	ErrTooFewParticipants = &Error{Kind: KindValidation, Message: "a chat needs at least two participants"}
)
