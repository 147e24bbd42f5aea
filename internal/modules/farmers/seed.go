package farmers

// SampleOrders returns the demo export orders for a new farmer, oldest first
func SampleOrders() []Order {
	return []Order{
		{
			Buyer:          "Global Foods LLC",
			Product:        "Basmati Rice",
			Quantity:       "10 MT",
			Value:          850000,
			Status:         StatusDelivered,
			Country:        "USA",
			OrderDate:      "2024-01-15",
			DeliveryDate:   "2024-02-15",
			PaymentStatus:  "Paid",
			QualityGrade:   "Premium",
			Packaging:      "50kg bags",
			ShippingMethod: "Sea Freight",
		},
		{
			Buyer:            "Asian Imports Co.",
			Product:          "Turmeric Powder",
			Quantity:         "5 MT",
			Value:            325000,
			Status:           StatusInTransit,
			Country:          "UAE",
			OrderDate:        "2024-02-01",
			ExpectedDelivery: "2024-03-15",
			PaymentStatus:    "Partial",
			QualityGrade:     "Standard",
			Packaging:        "25kg bags",
			ShippingMethod:   "Air Freight",
		},
		{
			Buyer:            "European Spices",
			Product:          "Black Pepper",
			Quantity:         "2 MT",
			Value:            480000,
			Status:           StatusProcessing,
			Country:          "Germany",
			OrderDate:        "2024-02-20",
			ExpectedDelivery: "2024-04-01",
			PaymentStatus:    "Pending",
			QualityGrade:     "Premium",
			Packaging:        "10kg bags",
			ShippingMethod:   "Sea Freight",
		},
	}
}

// SampleEarnings returns six demo months of earnings, January to June 2024
func SampleEarnings() []MonthlyEarnings {
	return []MonthlyEarnings{
		{Month: "Jan", Year: 2024, TotalEarnings: 25000, TotalExports: 3, ExportItems: []string{"Basmati Rice", "Wheat"}, Expenses: 5000, NetProfit: 20000},
		{Month: "Feb", Year: 2024, TotalEarnings: 32000, TotalExports: 4, ExportItems: []string{"Turmeric Powder", "Rice"}, Expenses: 7000, NetProfit: 25000},
		{Month: "Mar", Year: 2024, TotalEarnings: 28000, TotalExports: 3, ExportItems: []string{"Spices", "Pulses"}, Expenses: 6000, NetProfit: 22000},
		{Month: "Apr", Year: 2024, TotalEarnings: 45000, TotalExports: 6, ExportItems: []string{"Basmati Rice", "Black Pepper"}, Expenses: 9000, NetProfit: 36000},
		{Month: "May", Year: 2024, TotalEarnings: 38000, TotalExports: 5, ExportItems: []string{"Organic Rice", "Turmeric"}, Expenses: 8000, NetProfit: 30000},
		{Month: "Jun", Year: 2024, TotalEarnings: 52000, TotalExports: 7, ExportItems: []string{"Cardamom", "Rice", "Spices"}, Expenses: 12000, NetProfit: 40000},
	}
}
