package entities

// Estado is a backend-managed lifecycle label for events. The five historical
// values (CANCELADO, FIN_DE_SEMANA, ESPERANDO_RTA, INFO_SOLICITADA,
// INTERNO_NODO) are seeded by migration and editable from /estados.
type Estado struct {
	ID     int
	Nombre string
}
