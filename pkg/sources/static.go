package sources

import "show-notes/pkg/domain"

// Episode categories of the built-in list
const (
	CategoryEntrepreneurs = "Entrepreneurs"
	CategoryInvestors     = "Investors"
	CategoryFerris        = "Ferris"
	CategoryMisc          = "Misc"
)

// Static returns the built-in episode list used when nothing else is configured.
func Static() List {
	return List{
		{BlogURL: "https://tim.blog/2018/06/07/one-person-businesses-that-make-1m-per-year/", VideoURL: "https://www.youtube.com/watch?v=AhVEGIVAGco", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2017/10/09/richard-branson/", VideoURL: "https://www.youtube.com/watch?v=KxL1B_3_KHk", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2019/02/07/tobi-lutke-shopify/", VideoURL: "https://www.youtube.com/watch?v=PQRXssjlk9U", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2020/12/09/harley-finkelstein/", VideoURL: "https://www.youtube.com/watch?v=tcvzxXhSQ8o", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2018/08/27/drew-houston/", VideoURL: "https://www.youtube.com/watch?v=A_E1t7FgAcU", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2018/12/20/patrick-collison/", VideoURL: "https://www.youtube.com/watch?v=l73FKkh29yE", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2020/12/03/daniel-ek/#more-53852", VideoURL: "https://www.youtube.com/watch?v=DICLqGAELMc", Category: CategoryEntrepreneurs},
		{BlogURL: "https://tim.blog/2019/04/09/eric-schmidt/", VideoURL: "https://www.youtube.com/watch?v=O1IgduDUzIY", Category: CategoryEntrepreneurs},

		{BlogURL: "https://tim.blog/2018/02/28/how-to-secure-financial-freedom-maximize-productivity-and-protect-your-health/", VideoURL: "https://www.youtube.com/watch?v=QBjM-G_d2RY", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2017/02/13/mr-money-mustache/", VideoURL: "https://www.youtube.com/watch?v=-FlLj64dI1Q", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2020/09/22/richard-koch/", VideoURL: "https://www.youtube.com/watch?v=JznCRpl9wp4", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2015/08/18/the-evolutionary-angel-naval-ravikant/", VideoURL: "https://www.youtube.com/watch?v=-7J-Gwc9pVg", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2016/01/30/naval-ravikant-on-happiness-hacks/", VideoURL: "https://www.youtube.com/watch?v=I53WciFh6ik", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2020/10/14/naval/", VideoURL: "https://www.youtube.com/watch?v=HiYo14wylQw", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2018/09/25/howard-marks/", VideoURL: "https://www.youtube.com/watch?v=9qeWQz7qCW4", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2020/05/11/howard-marks-2/", VideoURL: "https://www.youtube.com/watch?v=H0_ZscgTGXE", Category: CategoryInvestors},
		{BlogURL: "https://tim.blog/2017/09/13/ray-dalio/", VideoURL: "https://www.youtube.com/watch?v=hRM7Gsyn4H4", Category: CategoryInvestors},

		{BlogURL: "https://tim.blog/2020/01/30/random-show-new-years-resolutions-2010-2019-lessons/", VideoURL: "https://www.youtube.com/watch?v=BC5lBL3PsKw", Category: CategoryFerris},
		{BlogURL: "https://tim.blog/2020/02/13/ryan-holiday-interviews-tim-ferriss/", VideoURL: "https://www.youtube.com/watch?v=p3Yjx4PKIkk", Category: CategoryFerris},

		{BlogURL: "https://tim.blog/2019/12/05/adam-grant/", VideoURL: "https://www.youtube.com/watch?v=fbdfMn6phDw", Category: CategoryMisc},
		{BlogURL: "https://tim.blog/2020/12/08/jerry-seinfeld/", VideoURL: "https://www.youtube.com/watch?v=yNTmFORn3xQ", Category: CategoryMisc},
		{BlogURL: "https://tim.blog/2020/02/27/josh-waitzkin-beginners-mind-self-actualization-advice-from-your-future-self/", VideoURL: "https://www.youtube.com/watch?v=ZXjKNFD9cvo", Category: CategoryMisc},
		{BlogURL: "https://tim.blog/2021/01/21/michael-phelps-grant-hackett/#more-54432", VideoURL: "https://www.youtube.com/watch?v=aG5pLBH4-9s", Category: CategoryMisc},
		{BlogURL: "https://tim.blog/2021/01/06/stefi-cohen/#more-54185", VideoURL: "https://www.youtube.com/watch?v=usIslVQ-Pd8", Category: CategoryMisc},
		{BlogURL: "https://tim.blog/2020/12/16/martine-rothblatt/#more-54007", VideoURL: "https://www.youtube.com/watch?v=S1rExMw-13A", Category: CategoryMisc},
	}
}
