package goquery_test

// paprikaExport is a trimmed single-recipe export as written by Paprika 3.
const paprikaExport = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Buttermilk Pancakes</title>
</head>
<body>
<div class="recipe" itemscope itemtype="http://schema.org/Recipe">
  <div class="infobox">
    <h1 class="name" itemprop="name">  Buttermilk Pancakes </h1>
    <p class="categories"><span itemprop="recipeCategory">Breakfast, Quick , , Sweet</span></p>
    <p class="rating" value="4">★★★☆☆</p>
    <p class="metadata">
      <b>Prep Time: </b><span itemprop="prepTime">10 mins</span>
      <b>Cook Time: </b><span itemprop="cookTime">20 mins</span>
      <b>Servings: </b><span itemprop="recipeYield">4</span>
    </p>
    <p><b>Source: </b><span itemprop="author">Grandma's Kitchen</span></p>
  </div>
  <div class="ingredients text">
    <h3 class="subhead">Ingredients</h3>
    <p class="line" itemprop="recipeIngredient">Batter</p>
    <p class="line" itemprop="recipeIngredient"><strong>2</strong> cups all-purpose flour</p>
    <p class="line" itemprop="recipeIngredient"><strong>1</strong> tbsp sugar</p>
    <p class="line" itemprop="recipeIngredient"><strong>2</strong> large eggs</p>
    <p class="line" itemprop="recipeIngredient">freshly ground black pepper to finish</p>
    <p class="line" itemprop="recipeIngredient">   </p>
    <p class="line" itemprop="recipeIngredient"><b>1/2</b> teaspoonful baking soda</p>
  </div>
  <div class="directions text">
    <h3 class="subhead">Directions</h3>
    <div itemprop="recipeInstructions">
      <p class="line">3. Whisk the dry ingredients.</p>
      <p class="line">Fold in the eggs and buttermilk.</p>
      <p class="line">Cook on a hot griddle until golden.</p>
    </div>
  </div>
  <div class="notes text">
    <h3 class="subhead">Notes</h3>
    <div itemprop="comment"><p>Rest the batter for <em>five</em> minutes.</p></div>
  </div>
</div>
</body>
</html>`
