package forecasting

import "planforge/pkg/domain/entities"

// strategyKey indexes the method selection table by classification pair
type strategyKey struct {
	abc entities.ABCClass
	xyz entities.XYZClass
}

// defaultStrategy maps classification pairs to forecasting methods.
// High-value (A) and erratic (Z) items get the ensemble so no single
// method's failure dominates; stable mid-value items get exponential
// smoothing; low-value C items get the cheap moving average.
var defaultStrategy = map[strategyKey]entities.ForecastMethod{
	{entities.ClassA, entities.ClassX}: entities.MethodEnsemble,
	{entities.ClassA, entities.ClassY}: entities.MethodEnsemble,
	{entities.ClassA, entities.ClassZ}: entities.MethodEnsemble,
	{entities.ClassB, entities.ClassX}: entities.MethodETS,
	{entities.ClassB, entities.ClassY}: entities.MethodETS,
	{entities.ClassB, entities.ClassZ}: entities.MethodEnsemble,
	{entities.ClassC, entities.ClassX}: entities.MethodSMA,
	{entities.ClassC, entities.ClassY}: entities.MethodSMA,
	{entities.ClassC, entities.ClassZ}: entities.MethodSMA,
}

// SelectMethod resolves the forecasting method for a classified item.
// A per-item override short-circuits the table. Items flagged with
// insufficient data are excluded from auto selection and get MethodNone
// unless overridden.
func SelectMethod(cls entities.Classification, override entities.ForecastMethod) entities.ForecastMethod {
	if override != entities.MethodAuto {
		return override
	}
	if cls.InsufficientData {
		return entities.MethodNone
	}
	if method, ok := defaultStrategy[strategyKey{cls.ABC, cls.XYZ}]; ok {
		return method
	}
	return entities.MethodSMA
}
