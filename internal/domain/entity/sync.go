package entity

// Estados de sincronización por fila. El núcleo contable solo escribe
// SyncStatusPending; el colaborador de sincronización es quien marca
// synced/conflict. La lógica de negocio nunca consulta este campo.
const (
	SyncStatusPending  = "pending"
	SyncStatusSynced   = "synced"
	SyncStatusConflict = "conflict"
)
