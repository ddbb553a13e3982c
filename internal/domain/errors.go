package domain

import "errors"

// Errores de dominio (sin dependencias externas). El orquestador no
// recupera nada localmente: cualquier error aborta el alcance atómico
// completo y sube clasificado hasta la capa HTTP.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrAccountNotFound       = errors.New("cuenta no encontrada")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidAmount         = errors.New("el monto debe ser mayor que cero")
	ErrSameAccountTransfer   = errors.New("cuenta origen y destino son la misma")
	ErrInvalidCounterparty   = errors.New("venta a crédito o transferencia sin contraparte válida")
	ErrConversionUnsupported = errors.New("conversión de unidades no soportada")
	ErrCurrencyMismatch      = errors.New("transferencia entre monedas distintas no soportada")
	ErrAtomicWriteFailed     = errors.New("fallo el alcance de escritura atómica")
)
