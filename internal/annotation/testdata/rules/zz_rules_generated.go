package rules

// @Rule(owner=generated)
var GEN0001_X = 1
