package entity

import "time"

// Estados de un traslado entre puntos de inventario.
// El stock solo se mueve al firmar (PENDING -> COMPLETED).
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// Transfer mueve cantidades de uno o más productos entre dos puntos de inventario
// distintos. Cada item firmado produce dos asientos: delta negativo en origen y
// positivo en destino, ambos con el mismo ReferenceID.
type Transfer struct {
	ID             int64
	FromPointID    int64
	ToPointID      int64
	AssignedUserID int64
	CreatedBy      string
	Note           string
	Status         string
	SignatureData  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []TransferItem
}

// TransferItem línea de un traslado.
type TransferItem struct {
	ID         int64
	TransferID int64
	ProductID  int64
	Quantity   int64 // siempre positivo; el signo lo aporta cada pierna del movimiento
}
