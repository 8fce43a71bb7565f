package cancel_booking

// Request модель запроса на отмену бронирования пациентом
type Request struct {
	BookingID int64
	PatientID int64
}
