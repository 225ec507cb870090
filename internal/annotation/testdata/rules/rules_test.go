package rules

// @Rule(owner=test)
var TEST0001_X = 1
