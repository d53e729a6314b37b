package itm

import (
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/signal"
	"github.com/nfvri/itm/pkg/terrain"
	log "github.com/sirupsen/logrus"
)

// Area predicts the loss of a path known only by its length, terrain
// irregularity and how carefully the terminals were sited.
func Area(area model.AreaParameters, sys model.SystemParameters, v model.VariabilitySpec) model.Result {
	r, _ := AreaEx(area, sys, v)
	return r
}

// AreaEx is Area returning the intermediate values as well.
func AreaEx(area model.AreaParameters, sys model.SystemParameters, v model.VariabilitySpec) (model.Result, IntermediateValues) {
	warn, err := ValidateSystem(sys)
	if err == nil {
		err = ValidateVariability(v)
	}
	if err == nil {
		err = ValidateArea(area)
	}
	if err != nil {
		log.Debugf("rejected area prediction: %v", err)
		return model.Failed(errorCode(err), warn), IntermediateValues{}
	}
	return predict(areaGeometry(area, sys), sys, v, warn)
}

// AreaCR predicts the area mode loss for the given reliability (time) and
// confidence (situation) percentages, location held at 50%.
func AreaCR(area model.AreaParameters, sys model.SystemParameters, mode model.ModeOfVariability, confidence, reliability float64) model.Result {
	warn, err := ValidateSystem(sys)
	switch {
	case err != nil:
	case !mode.Valid():
		err = model.ErrModeOfVariability
	case !validPercentage(confidence):
		err = model.ErrConfidence
	case !validPercentage(reliability):
		err = model.ErrReliability
	default:
		err = ValidateArea(area)
	}
	if err != nil {
		log.Debugf("rejected area prediction: %v", err)
		return model.Failed(errorCode(err), warn)
	}
	v := model.VariabilitySpec{Mode: mode, Time: reliability, Location: 50, Situation: confidence}
	r, _ := predict(areaGeometry(area, sys), sys, v, warn)
	return r
}

func areaGeometry(area model.AreaParameters, sys model.SystemParameters) geometrySource {
	return geometrySource{
		path: func(env signal.Environment) (*signal.Path, model.Warning) {
			siting := [2]model.SitingCriteria{area.TxSiting, area.RxSiting}
			geo, warn := terrain.AreaGeometry(area.Distance*1000, sys.Heights(), siting, area.DeltaH, env.GammaE)
			p, w := signal.NewAreaPath(env, geo)
			return p, warn | w
		},
	}
}
