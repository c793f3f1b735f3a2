package calendar

type CreateWorkPatternRequest struct {
	EffectiveFrom string `json:"effective_from" binding:"required"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	WorkStart string `json:"work_start" binding:"required"`
	WorkEnd   string `json:"work_end" binding:"required"`

	HalfDayWeekday *int    `json:"half_day_weekday"`
	HalfDayEnd     *string `json:"half_day_end"`
}

type WorkPatternResponse struct {
	ID            string `json:"id"`
	SatkerID      string `json:"satker_id"`
	EffectiveFrom string `json:"effective_from"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	WorkStart string `json:"work_start"`
	WorkEnd   string `json:"work_end"`

	HalfDayWeekday *int    `json:"half_day_weekday,omitempty"`
	HalfDayEnd     *string `json:"half_day_end,omitempty"`
}

type CreateHolidayRequest struct {
	Scope       string  `json:"scope" binding:"required"`
	SatkerID    *string `json:"satker_id"`
	HolidayDate string  `json:"holiday_date" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	HalfDayEnd  *string `json:"half_day_end"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Scope       string  `json:"scope"`
	SatkerID    *string `json:"satker_id,omitempty"`
	HolidayDate string  `json:"holiday_date"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	HalfDayEnd  *string `json:"half_day_end,omitempty"`
}

type GenerateCalendarRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type CalendarDayResponse struct {
	ID            string  `json:"id"`
	SatkerID      string  `json:"satker_id"`
	WorkDate      string  `json:"work_date"`
	DayType       string  `json:"day_type"`
	ExpectedStart *string `json:"expected_start,omitempty"`
	ExpectedEnd   *string `json:"expected_end,omitempty"`
	Note          string  `json:"note,omitempty"`
}
