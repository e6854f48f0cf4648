package analysis

import "github.com/propscan/propscan/pkg/model"

// Variables maps parameter keys to the values resolved for one property.
type Variables map[string]float64

// Resolve produces concrete variable values for one property. A
// utility-tagged parameter accrues its default once for every unit whose
// tenant does not pay that utility (the landlord bears that unit's share);
// per-unit parameters scale with the unit count; everything else passes
// through unchanged.
func Resolve(p model.Property) Variables {
	vars := make(Variables, len(Registry))
	for _, param := range Registry {
		switch {
		case param.Utility != "":
			v := 0.0
			for _, unitUtilities := range p.UtilitiesPaidByUnit {
				if !model.HasUtility(unitUtilities, param.Utility) {
					v += param.Default
				}
			}
			vars[param.Key] = v
		case param.PerUnit:
			vars[param.Key] = param.Default * float64(p.NumUnits)
		default:
			vars[param.Key] = param.Default
		}
	}
	return vars
}
