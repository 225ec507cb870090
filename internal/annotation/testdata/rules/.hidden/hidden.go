package hidden

// @Rule(owner=hidden)
var HIDE0001_X = 1
