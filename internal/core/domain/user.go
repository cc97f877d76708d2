package domain

// UserType distingue les comptes gratuits des comptes premium.
// La valeur voyage dans toutes les projections publiques.
type UserType string

const (
	UserTypeRegular UserType = "regular"
	UserTypePremium UserType = "premium"
)

// UserSummary est LA projection publique d'un compte.
// Contrat d'exposition : jamais d'email, jamais de credentials.
// Les comptes appartiennent au service d'identité ; ici on ne fait que les
// lire pour les checks d'existence et les projections.
type UserSummary struct {
	ID           string
	Username     string
	FullName     string
	ProfileImage string
	UserType     UserType
}
