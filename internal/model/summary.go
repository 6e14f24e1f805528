package model

// CustomerSummary is one row per customer, rebuilt from rides by the ingestion pipeline.
// Monetary totals are pointers because an externally loaded table may carry NULLs.
type CustomerSummary struct {
	CustomerID         string   `gorm:"column:Customer_ID;primaryKey" json:"customer_id"`
	TotalBookings      int64    `gorm:"column:Total_Bookings" json:"total_bookings"`
	SuccessfulBookings int64    `gorm:"column:Successful_Bookings" json:"successful_bookings"`
	TotalSpent         *float64 `gorm:"column:Total_Spent" json:"total_spent"`
	AvgRatingGiven     *float64 `gorm:"column:Avg_Rating_Given" json:"avg_rating_given"`
	LastBookingDate    string   `gorm:"column:Last_Booking_Date" json:"last_booking_date"`
}

func (CustomerSummary) TableName() string { return "customer_summary" }

var CustomerSummaryColumns = []string{"Customer_ID", "Total_Bookings", "Total_Spent"}

// DailySummary is one row per calendar date.
type DailySummary struct {
	Date               string   `gorm:"column:Date;primaryKey" json:"date"`
	TotalBookings      int64    `gorm:"column:Total_Bookings" json:"total_bookings"`
	SuccessfulBookings int64    `gorm:"column:Successful_Bookings" json:"successful_bookings"`
	TotalRevenue       *float64 `gorm:"column:Total_Revenue" json:"total_revenue"`
	AvgBookingValue    *float64 `gorm:"column:Avg_Booking_Value" json:"avg_booking_value"`
}

func (DailySummary) TableName() string { return "daily_summary" }

var DailySummaryColumns = []string{"Date", "Total_Bookings", "Successful_Bookings", "Total_Revenue"}

type VehicleSummary struct {
	VehicleType        string   `gorm:"column:Vehicle_Type;primaryKey" json:"vehicle_type"`
	TotalBookings      int64    `gorm:"column:Total_Bookings" json:"total_bookings"`
	SuccessfulBookings int64    `gorm:"column:Successful_Bookings" json:"successful_bookings"`
	AvgBookingValue    *float64 `gorm:"column:Avg_Booking_Value" json:"avg_booking_value"`
	TotalRevenue       *float64 `gorm:"column:Total_Revenue" json:"total_revenue"`
	AvgDistance        *float64 `gorm:"column:Avg_Distance" json:"avg_distance"`
	TotalDistance      *float64 `gorm:"column:Total_Distance" json:"total_distance"`
	AvgDriverRating    *float64 `gorm:"column:Avg_Driver_Rating" json:"avg_driver_rating"`
	AvgCustomerRating  *float64 `gorm:"column:Avg_Customer_Rating" json:"avg_customer_rating"`
}

func (VehicleSummary) TableName() string { return "vehicle_summary" }
