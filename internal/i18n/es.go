package i18n

var spanish = map[string]string{
	// Page chrome.
	"Air Quality Predictive Model":
		"Modelo Predictivo de la Calidad del Aire",
	"This application predicts air quality from a set of environmental measurements.":
		"Esta aplicación permite predecir la calidad del aire con base en distintos parámetros ambientales.",
	"Adjust the value of each variable, then press the prediction button to get the result.":
		"Ajusta los valores de cada variable y presiona el botón de predicción para obtener el resultado.",
	"Enter the value of each variable, then press the prediction button to get the result.":
		"Ingresa los valores de cada variable y presiona el botón de predicción para obtener el resultado.",
	"Authors: %s":
		"Autores: %s",
	"Select the values of the variables":
		"Seleccione los valores de las variables",
	"Predict Air Quality":
		"Predecir Calidad del Aire",
	"Recommendation":
		"Recomendación",
	"How to improve":
		"Cómo mejorar",
	"Invalid value %q for %s, using default %s.":
		"Valor inválido %q para %s, se usa el valor por defecto %s.",
	"Prediction failed. See the server log for details.":
		"La predicción falló. Consulte el registro del servidor.",
	"Press Enter on the last field to predict, Tab to move, Esc to quit.":
		"Presiona Enter en el último campo para predecir, Tab para moverte, Esc para salir.",

	// Recommendations.
	"No recommendations available for this category.":
		"No hay recomendaciones disponibles para esta categoría.",
	"Air quality is satisfactory. Outdoor activities are safe for everyone.":
		"La calidad del aire es satisfactoria. Las actividades al aire libre son seguras para todos.",
	"Air quality is acceptable. Unusually sensitive people should consider limiting prolonged outdoor exertion.":
		"La calidad del aire es aceptable. Las personas especialmente sensibles deberían limitar el esfuerzo prolongado al aire libre.",
	"Sensitive groups should stay indoors and everyone else should limit prolonged outdoor exertion.":
		"Los grupos sensibles deberían permanecer en interiores y el resto de personas limitar el esfuerzo prolongado al aire libre.",
	"Health alert: avoid all outdoor activity, keep windows closed and wear an N95 mask if you must go out.":
		"Alerta sanitaria: evite toda actividad al aire libre, mantenga las ventanas cerradas y use mascarilla N95 si debe salir.",

	// Improvements.
	"Reduce vehicle use and avoid burning waste to keep pollutant levels from rising.":
		"Reduzca el uso de vehículos y evite la quema de residuos para que los contaminantes no aumenten.",
	"Prefer public transport, limit industrial emissions near homes and expand urban green areas.":
		"Prefiera el transporte público, limite las emisiones industriales cerca de viviendas y amplíe las zonas verdes urbanas.",
	"Urgent action is needed: restrict industrial and traffic emissions and move sensitive groups away from industrial zones.":
		"Se requieren medidas urgentes: restringir las emisiones industriales y del tráfico y alejar a los grupos sensibles de las zonas industriales.",
}
