package model

import "strings"

type StatusCategory string

const (
	StatusSuccess             StatusCategory = "Success"
	StatusCancelledByCustomer StatusCategory = "CancelledByCustomer"
	StatusCancelledByDriver   StatusCategory = "CancelledByDriver"
	StatusIncomplete          StatusCategory = "Incomplete"
	StatusOther               StatusCategory = "Other"
)

// StatusCategories lists every category in display order.
var StatusCategories = []StatusCategory{
	StatusSuccess,
	StatusCancelledByCustomer,
	StatusCancelledByDriver,
	StatusIncomplete,
	StatusOther,
}

// CategorizeStatus maps the raw Booking_Status text (and the Incomplete_Rides flag)
// onto a category. It runs once at ingestion; reports only compare categories.
func CategorizeStatus(status string, incompleteFlag *string) StatusCategory {
	status = strings.TrimSpace(status)
	switch {
	case status == "Success":
		return StatusSuccess
	case strings.Contains(status, "Customer"):
		return StatusCancelledByCustomer
	case strings.Contains(status, "Driver"):
		return StatusCancelledByDriver
	case strings.Contains(status, "Incomplete"):
		return StatusIncomplete
	case incompleteFlag != nil && strings.EqualFold(strings.TrimSpace(*incompleteFlag), "Yes"):
		return StatusIncomplete
	default:
		return StatusOther
	}
}

func (c StatusCategory) Label() string {
	switch c {
	case StatusSuccess:
		return "Successful"
	case StatusCancelledByCustomer:
		return "Cancelled by Customer"
	case StatusCancelledByDriver:
		return "Cancelled by Driver"
	case StatusIncomplete:
		return "Incomplete"
	default:
		return "Other"
	}
}

func (c StatusCategory) Valid() bool {
	for _, known := range StatusCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Ride is one booking attempt. Date is stored as YYYY-MM-DD so that string order is
// chronological order in every backing engine.
type Ride struct {
	BookingID          string         `gorm:"column:Booking_ID;primaryKey" json:"booking_id"`
	Date               string         `gorm:"column:Date;not null;index:idx_rides_date" json:"date"`
	Time               string         `gorm:"column:Time" json:"time"`
	Hour               int            `gorm:"column:Hour" json:"hour"`
	Weekday            string         `gorm:"column:Weekday" json:"weekday"`
	CustomerID         string         `gorm:"column:Customer_ID;not null;index:idx_rides_customer" json:"customer_id"`
	VehicleType        string         `gorm:"column:Vehicle_Type;not null;index:idx_rides_vehicle" json:"vehicle_type"`
	PickupLocation     string         `gorm:"column:Pickup_Location" json:"pickup_location"`
	DropLocation       string         `gorm:"column:Drop_Location" json:"drop_location"`
	BookingStatus      string         `gorm:"column:Booking_Status;not null" json:"booking_status"`
	StatusCategory     StatusCategory `gorm:"column:Status_Category;not null;index:idx_rides_status" json:"status_category"`
	VTAT               *float64       `gorm:"column:V_TAT" json:"v_tat"`
	CTAT               *float64       `gorm:"column:C_TAT" json:"c_tat"`
	CanceledByCustomer *string        `gorm:"column:Canceled_Rides_by_Customer" json:"canceled_rides_by_customer"`
	CanceledByDriver   *string        `gorm:"column:Canceled_Rides_by_Driver" json:"canceled_rides_by_driver"`
	IncompleteRides    *string        `gorm:"column:Incomplete_Rides" json:"incomplete_rides"`
	IncompleteReason   *string        `gorm:"column:Incomplete_Rides_Reason" json:"incomplete_rides_reason"`
	BookingValue       *float64       `gorm:"column:Booking_Value" json:"booking_value"`
	PaymentMethod      *string        `gorm:"column:Payment_Method" json:"payment_method"`
	RideDistance       *float64       `gorm:"column:Ride_Distance" json:"ride_distance"`
	DriverRatings      *float64       `gorm:"column:Driver_Ratings" json:"driver_ratings"`
	CustomerRating     *float64       `gorm:"column:Customer_Rating" json:"customer_rating"`
	RevenuePerKM       *float64       `gorm:"column:Revenue_Per_KM" json:"revenue_per_km"`
}

func (Ride) TableName() string { return "rides" }

func (r Ride) IsSuccess() bool { return r.StatusCategory == StatusSuccess }

// RideColumns are the rides columns the reporting layer reads.
var RideColumns = []string{
	"Booking_ID", "Date", "Time", "Hour", "Weekday", "Customer_ID", "Vehicle_Type",
	"Pickup_Location", "Drop_Location", "Booking_Status", "Status_Category",
	"Canceled_Rides_by_Customer", "Canceled_Rides_by_Driver", "Incomplete_Rides",
	"Incomplete_Rides_Reason", "Booking_Value", "Payment_Method", "Ride_Distance",
	"Driver_Ratings", "Customer_Rating", "Revenue_Per_KM",
}
