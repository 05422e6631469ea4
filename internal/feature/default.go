package feature

// defaultFeatures lists the training means of the air-quality dataset.
var defaultFeatures = []Feature{
	{Name: "Temperature", Default: 29.977300},
	{Name: "Humidity", Default: 70.036240},
	{Name: "PM10", Default: 28.215900},
	{Name: "NO2", Default: 26.364280},
	{Name: "SO2", Default: 9.911630},
	{Name: "CO", Default: 1.498345},
	{Name: "Proximity_to_Industrial_Areas", Default: 8.419160},
	{Name: "Population_Density", Default: 497.406700},
}
