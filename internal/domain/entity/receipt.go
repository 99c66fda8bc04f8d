package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// Condition grado físico del repuesto recibido; cada uno es un bucket de inventario distinto.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRefurbished Condition = "refurbished"
	ConditionUsed        Condition = "used"
)

// Conditions lista cerrada de condiciones válidas.
var Conditions = []Condition{ConditionNew, ConditionRefurbished, ConditionUsed}

// ParseCondition valida y convierte la condición.
func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !c.IsValid() {
		return "", fmt.Errorf("condición %q: %w", s, domain.ErrInvalidInput)
	}
	return c, nil
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionRefurbished, ConditionUsed:
		return true
	}
	return false
}

func (c Condition) String() string { return string(c) }

// Receipt evento de recepción sobre un pedido; puede cubrir cualquier subconjunto de sus líneas.
type Receipt struct {
	ID        string
	OrderID   string
	Site      string
	CreatedBy string
	CreatedAt time.Time
	Items     []ReceiptItem
}

// ReceiptItem línea recibida. Solo se inserta; nunca se actualiza ni se borra.
type ReceiptItem struct {
	ID          string
	ReceiptID   string
	OrderItemID string
	PartID      string
	QtyReceived int
	Condition   Condition
	Location    string
}
