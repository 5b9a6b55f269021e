package model

// Service is a row of the read-only `services` catalog. Services are
// seeded out of band and never mutated through the API, so the struct
// carries json tags directly and is returned to clients as-is.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the cleaning service.
//  Description   – longer description shown in the catalog.
//  Price         – price in the shop currency.
//  DurationHours – expected duration of the job in hours.
type Service struct {
    ID            uint64  `json:"id"`             // services.id
    Name          string  `json:"name"`           // services.name
    Description   string  `json:"description"`    // services.description
    Price         float64 `json:"price"`          // services.price
    DurationHours uint32  `json:"duration_hours"` // services.duration_hours
}
