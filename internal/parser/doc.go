// Package parser turns chemical equation text into a chem.Equation.
//
// Two forms are accepted:
//
//	H2+O2=H2O        normal form, items joined by + and -, sides by =
//	H2;O2;H2O        auto-arranging form, sides decided by the balancer
//
// Molecules support nested (), [] and {} groups, hydrate dots
// ("CuSO4.5H2O"), a trailing charge descriptor ("Fe<3e+>", "<e->") and a
// trailing state ("(g)", "(aq)", "(l)", "(s)"). A leading integer is taken
// as the item's coefficient.
package parser
