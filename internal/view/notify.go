package view

import "fmt"

// Notification severities.
const (
	SeveritySuccess = "success"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification is a transient toast message for the UI.
type Notification struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Storefront notification copy.

func ProductAdded(name string) Notification {
	return Notification{SeveritySuccess, fmt.Sprintf("%s agregado al carrito", name)}
}

func QuantityUpdated(name string) Notification {
	return Notification{SeveritySuccess, fmt.Sprintf("Cantidad actualizada: %s", name)}
}

func ProductRemoved(name string) Notification {
	return Notification{SeverityInfo, fmt.Sprintf("%s eliminado del carrito", name)}
}

func ProductNotFound() Notification {
	return Notification{SeverityError, "Producto no encontrado"}
}

func Welcome(name string) Notification {
	return Notification{SeveritySuccess, fmt.Sprintf("¡Bienvenido, %s!", name)}
}

func RegisteredWelcome(name string) Notification {
	return Notification{SeveritySuccess, fmt.Sprintf("¡Registro exitoso! Bienvenido, %s", name)}
}

func Goodbye(name string) Notification {
	if name == "" {
		name = "Usuario"
	}
	return Notification{SeverityInfo, fmt.Sprintf("¡Hasta luego, %s!", name)}
}

func CartEmpty() Notification {
	return Notification{SeverityWarning, "Tu carrito está vacío"}
}

func LoginRequired() Notification {
	return Notification{SeverityInfo, "Debes iniciar sesión para comprar"}
}
