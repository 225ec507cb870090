package nested

// @Rule(owner=nested, category=Nested)
var NEST0001_Deep = 1
