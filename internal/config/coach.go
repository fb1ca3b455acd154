package config

// CoachConfig describes the single coach served by this instance and the
// limits applied to booking requests.
type CoachConfig struct {
    ID             uint64  // coaches.id of the default coach
    TotalSeats     int     // seats in the coach
    RowWidth       int     // seats per row
    MaxSeatsPerReq int     // upper bound for one booking request
    FillRatio      float64 // share of seats reserved by random fill
}

// LoadCoachConfig reads the coach layout.  Defaults describe an 80 seat coach
// with rows of 7 where one booking may take up to 7 seats.
func LoadCoachConfig() CoachConfig {
    cfg := CoachConfig{
        ID:             uint64(envInt("COACH_ID", 1)),
        TotalSeats:     envInt("COACH_TOTAL_SEATS", 80),
        RowWidth:       envInt("COACH_ROW_WIDTH", 7),
        MaxSeatsPerReq: envInt("MAX_SEATS_PER_BOOKING", 7),
        FillRatio:      envFloat("COACH_FILL_RATIO", 0.5),
    }
    if cfg.ID == 0 {
        cfg.ID = 1
    }
    if cfg.TotalSeats < 1 {
        cfg.TotalSeats = 80
    }
    if cfg.RowWidth < 1 {
        cfg.RowWidth = 7
    }
    if cfg.MaxSeatsPerReq < 1 {
        cfg.MaxSeatsPerReq = cfg.RowWidth
    }
    if cfg.FillRatio < 0 || cfg.FillRatio > 1 {
        cfg.FillRatio = 0.5
    }
    return cfg
}
